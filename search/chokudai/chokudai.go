// Package chokudai implements chokudai search: one priority collection per
// depth, each pass expanding at most Width candidates of every depth in turn.
// Collections are never cleared between passes, so the answer after any
// completed pass stays valid and more passes only add exploration. A terminal
// candidate at the top of a level is retired, which ends that level's turn in
// the pass. Retired candidates are never expanded but still rank in Best.
package chokudai

import (
	"context"
	"fmt"
	"github.com/sw965/beamsearch/game"
	"github.com/sw965/beamsearch/search"
	"math/rand/v2"
)

type Engine[S any, A comparable] struct {
	Logic  game.Logic[S, A]
	Width  int
	Depth  int
	Passes int
	// Workers bounds the goroutines used for one (pass, depth) expansion. Values below 1 mean 1.
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
	if e.Passes < 0 {
		return fmt.Errorf("%w: Passes must be >= 0, got %d", search.ErrInvalidConfig, e.Passes)
	}
	return nil
}

// Levels runs the passes and returns the per depth collections, level 0 first.
func (e Engine[S, A]) Levels(ctx context.Context, init S) ([]*search.Beam[S, A], error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	levels := make([]*search.Beam[S, A], e.Depth+1)
	for t := range levels {
		levels[t] = search.NewBeam[S, A](e.Width)
	}
	levels[0].Push(search.NewRootCandidate[S, A](e.Logic.Clone(init)))

	for pass := 0; pass < e.Passes; pass++ {
		for t := 0; t < e.Depth; t++ {
			// 最初の展開だけは必ず行う
			if (pass > 0 || t > 0) && ctx.Err() != nil {
				return levels, nil
			}

			parents := make([]search.Candidate[S, A], 0, e.Width)
			for range e.Width {
				c, ok := levels[t].Peek()
				if !ok {
					break
				}
				// 終局した候補は展開せずに退避し、この深さの処理を打ち切る
				if e.Logic.IsEndFunc(c.State) {
					levels[t].Retire()
					break
				}
				levels[t].Pop()
				parents = append(parents, c)
			}

			children, err := search.Expand(e.Logic, parents, t, e.Workers)
			if err != nil {
				return nil, err
			}

			next := levels[t+1]
			next.Push(children...)

			best, hasBest := next.Best()
			e.Observer.Notify(search.Event[S, A]{
				Pass:    pass,
				Depth:   t,
				Size:    next.Len(),
				Pushed:  next.Pushed(),
				Best:    best,
				HasBest: hasBest,
			})
		}
	}
	return levels, nil
}

// Search returns the first action of the best candidate of the deepest
// non-empty level, or ok == false when there is none.
//
// ctx is checked at every (pass, depth) boundary after the first one, so a
// cancelled search still expands the root once. It answers from the levels
// built so far, with a nil error.
func (e Engine[S, A]) Search(ctx context.Context, init S) (action A, ok bool, err error) {
	levels, err := e.Levels(ctx, init)
	if err != nil {
		return action, false, err
	}
	return Best(levels)
}

// Best scans levels from the deepest one and answers from the first that is
// not empty, counting retired candidates.
func Best[S any, A comparable](levels []*search.Beam[S, A]) (action A, ok bool, err error) {
	for t := len(levels) - 1; t >= 0; t-- {
		best, hasBest := levels[t].Best()
		if !hasBest {
			continue
		}
		if !best.HasFirstAction {
			return action, false, nil
		}
		return best.FirstAction, true, nil
	}
	return action, false, nil
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
			return action, fmt.Errorf("%w: chokudai search", game.ErrNoAction)
		}
		return action, nil
	}
}

// Search runs a chokudai search without cancellation.
func Search[S any, A comparable](logic game.Logic[S, A], init S, width, depth, passes int) (A, bool, error) {
	e := Engine[S, A]{Logic: logic, Width: width, Depth: depth, Passes: passes}
	return e.Search(context.Background(), init)
}
