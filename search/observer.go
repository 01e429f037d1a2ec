package search

import (
	"github.com/rs/zerolog"
)

// Event describes the search at a depth boundary (beam) or a (pass, depth)
// boundary (chokudai). Best is the highest ranked candidate of the collection
// that was just filled and is meaningful only when HasBest is set.
type Event[S any, A comparable] struct {
	Pass    int
	Depth   int
	Size    int
	Pushed  int
	Best    Candidate[S, A]
	HasBest bool
}

type Observer[S any, A comparable] func(Event[S, A])

func (o Observer[S, A]) Notify(e Event[S, A]) {
	if o != nil {
		o(e)
	}
}

// NewLogObserver writes one debug record per boundary to logger.
func NewLogObserver[S any, A comparable](logger zerolog.Logger) Observer[S, A] {
	return func(e Event[S, A]) {
		ev := logger.Debug().
			Int("pass", e.Pass).
			Int("depth", e.Depth).
			Int("size", e.Size).
			Int("pushed", e.Pushed)
		if e.HasBest {
			ev = ev.Float32("best_score", e.Best.Score)
			if e.Best.HasFirstAction {
				ev = ev.Interface("first_action", e.Best.FirstAction)
			}
		}
		ev.Msg("search-boundary")
	}
}
