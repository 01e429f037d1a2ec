package search

import (
	"github.com/sw965/beamsearch/game"
	"github.com/sw965/omw/parallel"
)

// Expand produces one child per legal action of every parent. Children whose
// parent is at depth 0 take the action as their FirstAction; deeper children
// inherit it from the parent. Parents without legal actions yield nothing.
//
// Parents are expanded on up to workers goroutines. Each parent writes only
// its own slot, and the slots are concatenated in parent order, so the result
// does not depend on workers.
func Expand[S any, A comparable](logic game.Logic[S, A], parents []Candidate[S, A], depth, workers int) ([]Candidate[S, A], error) {
	n := len(parents)
	if n == 0 {
		return nil, nil
	}

	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	slots := make([][]Candidate[S, A], n)
	err := parallel.For(n, workers, func(_, idx int) error {
		children, err := expandOne(logic, parents[idx], depth)
		if err != nil {
			return err
		}
		slots[idx] = children
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	children := make([]Candidate[S, A], 0, total)
	for _, s := range slots {
		children = append(children, s...)
	}
	return children, nil
}

func expandOne[S any, A comparable](logic game.Logic[S, A], parent Candidate[S, A], depth int) ([]Candidate[S, A], error) {
	legalActions := logic.LegalActionsFunc(parent.State)
	children := make([]Candidate[S, A], 0, len(legalActions))
	for _, action := range legalActions {
		next, err := logic.Step(parent.State, action)
		if err != nil {
			return nil, err
		}

		child := Candidate[S, A]{
			State:          next,
			Score:          logic.EvaluateFunc(next),
			FirstAction:    parent.FirstAction,
			HasFirstAction: parent.HasFirstAction,
		}
		if depth == 0 {
			child.FirstAction = action
			child.HasFirstAction = true
		}
		children = append(children, child)
	}
	return children, nil
}
