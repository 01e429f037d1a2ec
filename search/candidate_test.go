package search_test

import (
	"github.com/sw965/beamsearch/search"
	"slices"
	"testing"
)

type cand = search.Candidate[string, int]

func TestBeamPopOrder(t *testing.T) {
	b := search.NewBeam[string, int](0)
	b.Push(
		cand{State: "a", Score: 1},
		cand{State: "b", Score: 5},
		cand{State: "c", Score: 3},
		cand{State: "d", Score: 5},
		cand{State: "e", Score: -2},
		cand{State: "f", Score: 3},
	)

	// 同じScoreはPushした順に取り出される
	want := []string{"b", "d", "c", "f", "a", "e"}
	got := make([]string, 0, len(want))
	for !b.IsEmpty() {
		c, ok := b.Pop()
		if !ok {
			t.Fatal("Pop reported empty on a non-empty beam")
		}
		got = append(got, c.State)
	}

	if !slices.Equal(got, want) {
		t.Errorf("want: %v, got: %v", want, got)
	}
}

func TestBeamEmpty(t *testing.T) {
	var b search.Beam[string, int]

	if !b.IsEmpty() || b.Len() != 0 {
		t.Errorf("zero Beam must be empty")
	}
	if _, ok := b.Pop(); ok {
		t.Errorf("Pop on empty beam: want ok == false")
	}
	if _, ok := b.Peek(); ok {
		t.Errorf("Peek on empty beam: want ok == false")
	}
	if got := b.PopN(3); len(got) != 0 {
		t.Errorf("PopN on empty beam: want nothing, got %v", got)
	}
}

func TestBeamPopN(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		want     []string
		wantLeft int
	}{
		{name: "正常_一部", n: 2, want: []string{"c", "b"}, wantLeft: 1},
		{name: "正常_全部より多い", n: 10, want: []string{"c", "b", "a"}, wantLeft: 0},
		{name: "正常_0個", n: 0, want: nil, wantLeft: 3},
		{name: "準正常_負数", n: -1, want: nil, wantLeft: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := search.NewBeam[string, int](3)
			b.Push(cand{State: "a", Score: 1}, cand{State: "b", Score: 2}, cand{State: "c", Score: 3})

			var got []string
			for _, c := range b.PopN(tc.n) {
				got = append(got, c.State)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("want: %v, got: %v", tc.want, got)
			}
			if b.Len() != tc.wantLeft {
				t.Errorf("left: want %d, got %d", tc.wantLeft, b.Len())
			}
		})
	}
}

func TestBeamPeekAndPushed(t *testing.T) {
	b := search.NewBeam[string, int](0)
	b.Push(cand{State: "a", Score: 1})
	b.Push(cand{State: "b", Score: 2})

	c, ok := b.Peek()
	if !ok || c.State != "b" {
		t.Errorf("Peek: want b, got %v (ok=%t)", c.State, ok)
	}
	if b.Len() != 2 {
		t.Errorf("Peek must not remove, len=%d", b.Len())
	}

	b.Pop()
	b.Pop()
	if b.Pushed() != 2 {
		t.Errorf("Pushed must count every insert, got %d", b.Pushed())
	}
}

func TestNewRootCandidate(t *testing.T) {
	c := search.NewRootCandidate[string, int]("root")
	if c.HasFirstAction {
		t.Errorf("root candidate must not carry a first action")
	}
	if c.State != "root" {
		t.Errorf("state: want root, got %s", c.State)
	}
}

func TestBeamRetire(t *testing.T) {
	tests := []struct {
		name        string
		push        []cand
		retire      int
		wantBest    string
		wantPeek    string
		wantLen     int
		wantRetired int
	}{
		{
			name:        "正常_退避した候補が最善",
			push:        []cand{{State: "a", Score: 9}, {State: "b", Score: 3}},
			retire:      1,
			wantBest:    "a",
			wantPeek:    "b",
			wantLen:     1,
			wantRetired: 1,
		},
		{
			name:        "正常_同じScoreは先にPushされた退避候補",
			push:        []cand{{State: "a", Score: 5}, {State: "b", Score: 5}},
			retire:      1,
			wantBest:    "a",
			wantPeek:    "b",
			wantLen:     1,
			wantRetired: 1,
		},
		{
			name:        "正常_全て退避",
			push:        []cand{{State: "a", Score: 1}, {State: "b", Score: 4}, {State: "c", Score: 4}},
			retire:      3,
			wantBest:    "b",
			wantLen:     0,
			wantRetired: 3,
		},
		{
			name:        "準正常_空から退避",
			retire:      2,
			wantRetired: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := search.NewBeam[string, int](0)
			b.Push(tc.push...)
			for range tc.retire {
				b.Retire()
			}

			best, ok := b.Best()
			if ok != (tc.wantBest != "") || best.State != tc.wantBest {
				t.Errorf("Best: want %q, got %q (ok=%t)", tc.wantBest, best.State, ok)
			}
			peek, _ := b.Peek()
			if peek.State != tc.wantPeek {
				t.Errorf("Peek: want %q, got %q", tc.wantPeek, peek.State)
			}
			if b.Len() != tc.wantLen {
				t.Errorf("Len: want %d, got %d", tc.wantLen, b.Len())
			}
			if b.Retired() != tc.wantRetired {
				t.Errorf("Retired: want %d, got %d", tc.wantRetired, b.Retired())
			}
		})
	}
}

func TestBeamRetireKeepsLaterPushesRanked(t *testing.T) {
	b := search.NewBeam[string, int](0)
	b.Push(cand{State: "a", Score: 2})
	b.Retire()
	b.Push(cand{State: "b", Score: 7})

	best, ok := b.Best()
	if !ok || best.State != "b" {
		t.Errorf("Best: want b, got %v (ok=%t)", best.State, ok)
	}

	b.Pop()
	best, ok = b.Best()
	if !ok || best.State != "a" {
		t.Errorf("Best after pop: want a, got %v (ok=%t)", best.State, ok)
	}
}
