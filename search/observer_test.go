package search_test

import (
	"bytes"
	"github.com/rs/zerolog"
	"github.com/sw965/beamsearch/search"
	"slices"
	"strings"
	"testing"
)

func TestNewLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	o := search.NewLogObserver[string, int](logger)

	o(search.Event[string, int]{
		Pass:    1,
		Depth:   2,
		Size:    3,
		Pushed:  7,
		Best:    search.Candidate[string, int]{Score: 6, FirstAction: 3, HasFirstAction: true},
		HasBest: true,
	})

	out := buf.String()
	for _, sub := range []string{`"pass":1`, `"depth":2`, `"size":3`, `"pushed":7`, `"best_score":6`, `"first_action":3`, `"search-boundary"`} {
		if !strings.Contains(out, sub) {
			t.Errorf("log %q does not contain %s", out, sub)
		}
	}
}

func TestNewLogObserverRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	o := search.NewLogObserver[string, int](logger)
	o(search.Event[string, int]{})

	if buf.Len() != 0 {
		t.Errorf("debug records must be dropped at info level, got %q", buf.String())
	}
}

func TestObserverNotifyNil(t *testing.T) {
	var o search.Observer[int, int]
	// nilのObserverは何もしない
	o.Notify(search.Event[int, int]{})

	var got []int
	o = func(e search.Event[int, int]) { got = append(got, e.Depth) }
	o.Notify(search.Event[int, int]{Depth: 3})
	if !slices.Equal(got, []int{3}) {
		t.Errorf("want [3], got %v", got)
	}
}
