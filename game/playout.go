package game

import (
	"fmt"
	"github.com/sw965/omw/parallel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"math/rand/v2"
)

// Playouts plays every initial state to the end with actor. The number of
// workers equals len(rngs); worker i only ever uses rngs[i].
func (l Logic[S, A]) Playouts(inits []S, actor Actor[S, A], rngs []*rand.Rand) ([]S, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if actor == nil {
		return nil, fmt.Errorf("%w: actor", ErrNilLogicFunc)
	}

	p := len(rngs)
	if p == 0 {
		return nil, fmt.Errorf("%w: rngs", ErrEmptySlice)
	}

	n := len(inits)
	finals := make([]S, n)

	err := parallel.For(n, p, func(workerId, idx int) error {
		rng := rngs[workerId]
		state := l.Clone(inits[idx])
		// 重複チェックは一手毎には行わず、初期状態でのみ行う
		if err := ValidateLegalActions(l.LegalActionsFunc(state)); err != nil {
			return err
		}

		for !l.IsEndFunc(state) {
			// actorが合法手を調べる前に、終局していないのに合法手が無い状態を弾く
			if len(l.LegalActionsFunc(state)) == 0 {
				return ErrNoLegalActions
			}

			action, err := actor(state, rng)
			if err != nil {
				return err
			}

			state, err = l.AdvanceFunc(state, action)
			if err != nil {
				return err
			}
		}
		finals[idx] = state
		return nil
	})
	return finals, err
}

type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize aggregates playout scores. StdDev is the unbiased sample standard
// deviation and is zero for a single score.
func Summarize(scores []float64) (Summary, error) {
	n := len(scores)
	if n == 0 {
		return Summary{}, fmt.Errorf("%w: scores", ErrEmptySlice)
	}

	mean, std := stat.MeanStdDev(scores, nil)
	if n == 1 {
		std = 0
	}
	return Summary{
		N:      n,
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(scores),
		Max:    floats.Max(scores),
	}, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.3f std=%.3f min=%.0f max=%.0f", s.N, s.Mean, s.StdDev, s.Min, s.Max)
}
