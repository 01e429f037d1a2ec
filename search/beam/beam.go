// Package beam implements single pass beam search: every depth keeps only the
// Width best candidates of the previous depth for expansion.
package beam

import (
	"context"
	"fmt"
	"github.com/sw965/beamsearch/game"
	"github.com/sw965/beamsearch/search"
	"math/rand/v2"
)

type Engine[S any, A comparable] struct {
	Logic game.Logic[S, A]
	Width int
	Depth int
	// Workers bounds the goroutines used to expand one depth. Values below 1 mean 1.
	Workers  int
	Observer search.Observer[S, A]
}

func (e Engine[S, A]) Validate() error {
	if err := e.Logic.Validate(); err != nil {
		return err
	}
	if e.Width < 0 {
		return fmt.Errorf("%w: Width must be >= 0, got %d", search.ErrInvalidConfig, e.Width)
	}
	if e.Depth < 0 {
		return fmt.Errorf("%w: Depth must be >= 0, got %d", search.ErrInvalidConfig, e.Depth)
	}
	return nil
}

// Search returns the first action of the best candidate after Depth rounds of
// expansion, or ok == false when no candidate carries one. The loop stops early
// when the best candidate of a round is terminal.
//
// ctx is checked before each round but the first, so a search that has a
// legal action always answers with one. A cancelled search returns what the
// last completed round found, with a nil error.
func (e Engine[S, A]) Search(ctx context.Context, init S) (action A, ok bool, err error) {
	if err := e.Validate(); err != nil {
		return action, false, err
	}

	current := search.NewBeam[S, A](1)
	current.Push(search.NewRootCandidate[S, A](e.Logic.Clone(init)))

	for t := 0; t < e.Depth; t++ {
		// 最初の深さは中断されていても展開する
		if t > 0 && ctx.Err() != nil {
			break
		}

		parents := current.PopN(e.Width)
		children, err := search.Expand(e.Logic, parents, t, e.Workers)
		if err != nil {
			return action, false, err
		}

		next := search.NewBeam[S, A](len(children))
		next.Push(children...)
		current = next

		best, hasBest := current.Peek()
		e.Observer.Notify(search.Event[S, A]{
			Depth:   t,
			Size:    current.Len(),
			Pushed:  current.Pushed(),
			Best:    best,
			HasBest: hasBest,
		})

		if !hasBest || e.Logic.IsEndFunc(best.State) {
			break
		}
	}

	best, hasBest := current.Peek()
	if !hasBest || !best.HasFirstAction {
		return action, false, nil
	}
	return best.FirstAction, true, nil
}

// Actor adapts the engine to game.Actor. A search that yields no action fails
// with game.ErrNoAction.
func (e Engine[S, A]) Actor(ctx context.Context) game.Actor[S, A] {
	return func(state S, _ *rand.Rand) (A, error) {
		action, ok, err := e.Search(ctx, state)
		if err != nil {
			return action, err
		}
		if !ok {
			return action, fmt.Errorf("%w: beam search", game.ErrNoAction)
		}
		return action, nil
	}
}

// Search runs a beam search of the given width and depth without cancellation.
func Search[S any, A comparable](logic game.Logic[S, A], init S, width, depth int) (A, bool, error) {
	e := Engine[S, A]{Logic: logic, Width: width, Depth: depth}
	return e.Search(context.Background(), init)
}
