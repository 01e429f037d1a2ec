// Package maze is a single player reward grid. A character walks one cell per
// turn and collects the reward written on each cell it enters. A collected
// reward is consumed, so it counts at most once.
//
// Package maze は一人用の得点迷路です。キャラクターは1ターンに1マス移動し、移動先のマスの得点を獲得します。
package maze

import (
	"errors"
	"fmt"
	"github.com/chewxy/math32"
	"github.com/sw965/beamsearch/game"
	"math/rand/v2"
	"strings"
)

var (
	ErrIllegalAction = errors.New("maze error: action leads off the board")
	ErrInvalidGrid   = errors.New("maze error: invalid grid")
	ErrUnknownEval   = errors.New("maze error: unknown evaluator")
)

type Action int

const (
	Right Action = iota
	Down
	Left
	Up
)

var (
	dx = [...]int{1, 0, -1, 0}
	dy = [...]int{0, 1, 0, -1}
)

var actionNames = [...]string{"right", "down", "left", "up"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

type Pos struct {
	Y int
	X int
}

// State holds the board, the character position and the progress of the game.
//
// Stateは盤面、キャラクターの位置、ゲームの進行状況を保持します。
type State struct {
	Character Pos
	Points    [][]int
	Turn      int
	EndTurn   int
	GameScore int
}

// NewState copies points and consumes the reward under the start position.
//
// NewStateは得点表を複製し、初期位置のマスの得点を0にします。
func NewState(start Pos, points [][]int, endTurn int) (State, error) {
	if err := validateGrid(points); err != nil {
		return State{}, err
	}

	if !inBoard(points, start.Y, start.X) {
		return State{}, fmt.Errorf("%w: start %v is outside the board", ErrInvalidGrid, start)
	}

	if endTurn < 0 {
		return State{}, fmt.Errorf("%w: endTurn must be >= 0, got %d", ErrInvalidGrid, endTurn)
	}

	state := State{
		Character: start,
		Points:    clonePoints(points),
		EndTurn:   endTurn,
	}
	state.Points[start.Y][start.X] = 0
	return state, nil
}

// NewRandomState draws every reward from [0, 9] and places the character uniformly.
//
// NewRandomStateは0から9の得点をランダムに配置した迷路を作成します。
func NewRandomState(height, width, endTurn int, rng *rand.Rand) (State, error) {
	if height <= 0 || width <= 0 {
		return State{}, fmt.Errorf("%w: size %dx%d", ErrInvalidGrid, height, width)
	}

	points := make([][]int, height)
	for y := range points {
		points[y] = make([]int, width)
		for x := range points[y] {
			points[y][x] = rng.IntN(10)
		}
	}
	start := Pos{Y: rng.IntN(height), X: rng.IntN(width)}
	return NewState(start, points, endTurn)
}

func validateGrid(points [][]int) error {
	if len(points) == 0 || len(points[0]) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidGrid)
	}

	width := len(points[0])
	for y, row := range points {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, y, len(row), width)
		}
		for x, p := range row {
			if p < 0 {
				return fmt.Errorf("%w: negative reward %d at (%d, %d)", ErrInvalidGrid, p, y, x)
			}
		}
	}
	return nil
}

func clonePoints(points [][]int) [][]int {
	c := make([][]int, len(points))
	for y, row := range points {
		c[y] = append([]int(nil), row...)
	}
	return c
}

func inBoard(points [][]int, y, x int) bool {
	return y >= 0 && y < len(points) && x >= 0 && x < len(points[y])
}

func (s State) Height() int {
	return len(s.Points)
}

func (s State) Width() int {
	if len(s.Points) == 0 {
		return 0
	}
	return len(s.Points[0])
}

// Clone returns a state that shares no memory with s.
func Clone(s State) State {
	c := s
	c.Points = clonePoints(s.Points)
	return c
}

// LegalActions returns the actions that keep the character on the board, in
// Right, Down, Left, Up order.
//
// LegalActionsは盤面の外に出ない行動を返します。
func LegalActions(s State) []Action {
	actions := make([]Action, 0, len(dx))
	for a := range dx {
		if inBoard(s.Points, s.Character.Y+dy[a], s.Character.X+dx[a]) {
			actions = append(actions, Action(a))
		}
	}
	return actions
}

// Advance moves the character and collects the reward of the destination.
// The Points of s are updated in place; use Clone to keep the original.
//
// Advanceはキャラクターを移動させ、移動先の得点を獲得します。sの得点表は直接書き換えられます。
func Advance(s State, action Action) (State, error) {
	if action < 0 || int(action) >= len(dx) {
		return State{}, fmt.Errorf("%w: %v", ErrIllegalAction, action)
	}

	ty := s.Character.Y + dy[action]
	tx := s.Character.X + dx[action]
	if !inBoard(s.Points, ty, tx) {
		return State{}, fmt.Errorf("%w: %v from %v", ErrIllegalAction, action, s.Character)
	}

	s.Character = Pos{Y: ty, X: tx}
	if p := s.Points[ty][tx]; p > 0 {
		s.GameScore += p
		s.Points[ty][tx] = 0
	}
	s.Turn++
	return s, nil
}

func IsEnd(s State) bool {
	return s.Turn >= s.EndTurn
}

// Evaluate ranks a state by its collected score.
func Evaluate(s State) float32 {
	return float32(s.GameScore)
}

// NearestRewardEvaluate adds to the collected score a bonus that pulls the
// character toward rewards it can still reach before the game ends. Each
// remaining reward r at Manhattan distance d contributes r/(d+1) when d does
// not exceed the remaining turns; only the largest contribution counts.
func NearestRewardEvaluate(s State) float32 {
	remaining := s.EndTurn - s.Turn
	var bonus float32
	for y, row := range s.Points {
		for x, p := range row {
			if p <= 0 {
				continue
			}
			d := math32.Abs(float32(y-s.Character.Y)) + math32.Abs(float32(x-s.Character.X))
			if d > float32(remaining) {
				continue
			}
			bonus = math32.Max(bonus, float32(p)/(d+1))
		}
	}
	return float32(s.GameScore) + bonus
}

// String renders the board with '@' on the character, like
//
//	# turn 0 score 0
//	4 6 1 3
//	0 @ 2 0
//	7 5 6 6
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# turn %d score %d\n", s.Turn, s.GameScore)
	for y, row := range s.Points {
		for x, p := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if s.Character.Y == y && s.Character.X == x {
				b.WriteByte('@')
			} else {
				fmt.Fprintf(&b, "%d", p)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Evaluators names the EvaluateFuncs the search engines can rank states with.
var Evaluators = map[string]game.EvaluateFunc[State]{
	"score":   Evaluate,
	"nearest": NearestRewardEvaluate,
}

// NewLogic creates the Logic the search engines run on, ranking states by the
// collected score.
//
// NewLogicは探索エンジン用のLogicを作成します。
func NewLogic() game.Logic[State, Action] {
	return NewLogicWith(Evaluate)
}

// NewLogicWith is NewLogic with another EvaluateFunc.
func NewLogicWith(evaluate game.EvaluateFunc[State]) game.Logic[State, Action] {
	return game.Logic[State, Action]{
		LegalActionsFunc: LegalActions,
		AdvanceFunc:      Advance,
		EvaluateFunc:     evaluate,
		IsEndFunc:        IsEnd,
		CloneFunc:        Clone,
	}
}

// NewLogicByName looks the EvaluateFunc up in Evaluators.
func NewLogicByName(eval string) (game.Logic[State, Action], error) {
	evaluate, ok := Evaluators[eval]
	if !ok {
		return game.Logic[State, Action]{}, fmt.Errorf("%w: %q", ErrUnknownEval, eval)
	}
	return NewLogicWith(evaluate), nil
}
