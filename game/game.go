// Package game defines the contract a searchable state must satisfy, together with
// playout utilities that drive a state to its end with an Actor.
//
// Package game は探索可能な状態が満たすべき関数群と、Actorで状態を終局まで進めるプレイアウト機能を提供します。
package game

import (
	"errors"
	"fmt"
	"github.com/sw965/omw/slicesx"
)

var (
	ErrNilLogicFunc          = errors.New("logic error: function field is nil")
	ErrNotUniqueLegalActions = errors.New("legalActions error: contains duplicates")
	ErrNoLegalActions        = errors.New("legalActions error: state is not ended but no legal actions are available")
	ErrNoAction              = errors.New("actor error: no action was selected")
	ErrEmptySlice            = errors.New("empty slice error")
)

type LegalActionsFunc[S any, A comparable] func(S) []A

// AdvanceFuncは渡された状態を書き換えても良い。呼び出し側は事前にCloneFuncで複製する。
type AdvanceFunc[S any, A comparable] func(S, A) (S, error)
type EvaluateFunc[S any] func(S) float32
type IsEndFunc[S any] func(S) bool
type CloneFunc[S any] func(S) S

// Logic bundles the operations the search engines need from a domain state.
// CloneFunc may be nil when S holds no reference types.
type Logic[S any, A comparable] struct {
	LegalActionsFunc LegalActionsFunc[S, A]
	AdvanceFunc      AdvanceFunc[S, A]
	EvaluateFunc     EvaluateFunc[S]
	IsEndFunc        IsEndFunc[S]
	CloneFunc        CloneFunc[S]
}

func (l Logic[S, A]) Validate() error {
	if l.LegalActionsFunc == nil {
		return fmt.Errorf("%w: LegalActionsFunc", ErrNilLogicFunc)
	}
	if l.AdvanceFunc == nil {
		return fmt.Errorf("%w: AdvanceFunc", ErrNilLogicFunc)
	}
	if l.EvaluateFunc == nil {
		return fmt.Errorf("%w: EvaluateFunc", ErrNilLogicFunc)
	}
	if l.IsEndFunc == nil {
		return fmt.Errorf("%w: IsEndFunc", ErrNilLogicFunc)
	}
	return nil
}

func (l Logic[S, A]) Clone(state S) S {
	if l.CloneFunc == nil {
		return state
	}
	return l.CloneFunc(state)
}

// Step returns the state reached by action without touching the given state.
func (l Logic[S, A]) Step(state S, action A) (S, error) {
	return l.AdvanceFunc(l.Clone(state), action)
}

func ValidateLegalActions[A comparable](legalActions []A) error {
	if !slicesx.IsUnique(legalActions) {
		return fmt.Errorf("%w: %v", ErrNotUniqueLegalActions, legalActions)
	}
	return nil
}
