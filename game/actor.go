package game

import (
	"fmt"
	"github.com/sw965/omw/mathx/randx"
	"math/rand/v2"
)

// Actor chooses the action to play from state. rng is owned by the calling worker.
type Actor[S any, A comparable] func(S, *rand.Rand) (A, error)

func NewRandomActor[S any, A comparable](logic Logic[S, A]) Actor[S, A] {
	return func(state S, rng *rand.Rand) (A, error) {
		legalActions := logic.LegalActionsFunc(state)
		if len(legalActions) == 0 {
			var zero A
			return zero, fmt.Errorf("%w: random actor", ErrNoAction)
		}
		return randx.Choice(legalActions, rng)
	}
}

// NewGreedyActor looks one action ahead and takes the action whose next state
// evaluates highest. Equal evaluations keep the earlier legal action.
//
// NewGreedyActorは1手先の評価値が最大となる行動を選びます。
func NewGreedyActor[S any, A comparable](logic Logic[S, A]) Actor[S, A] {
	return func(state S, _ *rand.Rand) (A, error) {
		var best A
		var bestScore float32
		found := false
		for _, action := range logic.LegalActionsFunc(state) {
			next, err := logic.Step(state, action)
			if err != nil {
				var zero A
				return zero, err
			}
			score := logic.EvaluateFunc(next)
			if !found || score > bestScore {
				best = action
				bestScore = score
				found = true
			}
		}
		if !found {
			var zero A
			return zero, fmt.Errorf("%w: greedy actor", ErrNoAction)
		}
		return best, nil
	}
}
