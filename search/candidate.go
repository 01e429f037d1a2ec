// Package search holds the pieces shared by the beam and chokudai engines:
// scored candidates, the priority collection they are ranked in, and the
// expansion step that turns one candidate into its children.
package search

import (
	"container/heap"
)

// Candidate pairs a state with its rank key. FirstAction is the action taken
// at depth 0 on the path to State and is valid only when HasFirstAction is set.
type Candidate[S any, A comparable] struct {
	State          S
	Score          float32
	FirstAction    A
	HasFirstAction bool
}

func NewRootCandidate[S any, A comparable](state S) Candidate[S, A] {
	return Candidate[S, A]{State: state}
}

type entry[S any, A comparable] struct {
	candidate Candidate[S, A]
	seq       uint64
}

type entries[S any, A comparable] []entry[S, A]

func (es entries[S, A]) Len() int { return len(es) }

// 同じScoreならば先にPushされた方を優先する
func (e entry[S, A]) before(o entry[S, A]) bool {
	if e.candidate.Score != o.candidate.Score {
		return e.candidate.Score > o.candidate.Score
	}
	return e.seq < o.seq
}

func (es entries[S, A]) Less(i, j int) bool { return es[i].before(es[j]) }

func (es entries[S, A]) Swap(i, j int) { es[i], es[j] = es[j], es[i] }

func (es *entries[S, A]) Push(x any) {
	*es = append(*es, x.(entry[S, A]))
}

func (es *entries[S, A]) Pop() any {
	old := *es
	n := len(old)
	e := old[n-1]
	old[n-1] = entry[S, A]{}
	*es = old[:n-1]
	return e
}

// Beam is a max priority collection of candidates ordered by Score. Candidates
// with equal Score come out in the order they were pushed.
// The zero value is an empty Beam ready to use.
//
// A retired candidate has left the pop order but still ranks in Best.
type Beam[S any, A comparable] struct {
	es      entries[S, A]
	pushed  uint64
	retired int
	top     entry[S, A]
}

func NewBeam[S any, A comparable](capacity int) *Beam[S, A] {
	return &Beam[S, A]{es: make(entries[S, A], 0, capacity)}
}

func (b *Beam[S, A]) Push(cs ...Candidate[S, A]) {
	for _, c := range cs {
		heap.Push(&b.es, entry[S, A]{candidate: c, seq: b.pushed})
		b.pushed++
	}
}

// Pop removes the highest ranked candidate. ok is false when b is empty.
func (b *Beam[S, A]) Pop() (Candidate[S, A], bool) {
	if len(b.es) == 0 {
		return Candidate[S, A]{}, false
	}
	e := heap.Pop(&b.es).(entry[S, A])
	return e.candidate, true
}

// PopN pops up to n candidates, highest ranked first.
func (b *Beam[S, A]) PopN(n int) []Candidate[S, A] {
	if n > len(b.es) {
		n = len(b.es)
	}
	if n <= 0 {
		return nil
	}
	cs := make([]Candidate[S, A], 0, n)
	for range n {
		c, _ := b.Pop()
		cs = append(cs, c)
	}
	return cs
}

func (b *Beam[S, A]) Peek() (Candidate[S, A], bool) {
	if len(b.es) == 0 {
		return Candidate[S, A]{}, false
	}
	return b.es[0].candidate, true
}

// Retire moves the highest ranked candidate out of the pop order. It reports
// false when there is nothing to retire.
func (b *Beam[S, A]) Retire() bool {
	if len(b.es) == 0 {
		return false
	}
	e := heap.Pop(&b.es).(entry[S, A])
	if b.retired == 0 || e.before(b.top) {
		b.top = e
	}
	b.retired++
	return true
}

// Best is like Peek but also considers retired candidates.
func (b *Beam[S, A]) Best() (Candidate[S, A], bool) {
	if b.retired == 0 {
		return b.Peek()
	}
	if len(b.es) > 0 && b.es[0].before(b.top) {
		return b.es[0].candidate, true
	}
	return b.top.candidate, true
}

func (b *Beam[S, A]) Retired() int {
	return b.retired
}

// Len counts the candidates that can still be popped.
func (b *Beam[S, A]) Len() int {
	return len(b.es)
}

func (b *Beam[S, A]) IsEmpty() bool {
	return len(b.es) == 0
}

// Pushed is the number of candidates ever pushed into b. It never decreases.
func (b *Beam[S, A]) Pushed() int {
	return int(b.pushed)
}
