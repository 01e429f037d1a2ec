package maze

import (
	"fmt"
	"github.com/tidwall/gjson"
	"math"
)

// ParseJSON reads a scenario of the form
//
//	{"start": {"y": 1, "x": 1}, "points": [[4, 6, 1, 3], [0, 0, 2, 0]], "end_turn": 4}
//
// end_turn defaults to 4 when omitted.
func ParseJSON(data []byte) (State, error) {
	if !gjson.ValidBytes(data) {
		return State{}, fmt.Errorf("%w: malformed json", ErrInvalidGrid)
	}

	root := gjson.ParseBytes(data)

	start := root.Get("start")
	if !start.Get("y").Exists() || !start.Get("x").Exists() {
		return State{}, fmt.Errorf("%w: start.y and start.x are required", ErrInvalidGrid)
	}
	y, ok := intOf(start.Get("y"))
	if !ok {
		return State{}, fmt.Errorf("%w: start.y must be an integer, got %s", ErrInvalidGrid, start.Get("y").Raw)
	}
	x, ok := intOf(start.Get("x"))
	if !ok {
		return State{}, fmt.Errorf("%w: start.x must be an integer, got %s", ErrInvalidGrid, start.Get("x").Raw)
	}
	pos := Pos{Y: y, X: x}

	rows := root.Get("points")
	if !rows.IsArray() {
		return State{}, fmt.Errorf("%w: points must be an array of rows", ErrInvalidGrid)
	}

	var points [][]int
	var rowErr error
	rows.ForEach(func(_, row gjson.Result) bool {
		if !row.IsArray() {
			rowErr = fmt.Errorf("%w: row %d is not an array", ErrInvalidGrid, len(points))
			return false
		}
		cells := row.Array()
		r := make([]int, len(cells))
		for i, c := range cells {
			v, ok := intOf(c)
			if !ok {
				rowErr = fmt.Errorf("%w: cell (%d, %d) must be an integer, got %s", ErrInvalidGrid, len(points), i, c.Raw)
				return false
			}
			r[i] = v
		}
		points = append(points, r)
		return true
	})
	if rowErr != nil {
		return State{}, rowErr
	}

	endTurn := 4
	if v := root.Get("end_turn"); v.Exists() {
		var ok bool
		if endTurn, ok = intOf(v); !ok {
			return State{}, fmt.Errorf("%w: end_turn must be an integer, got %s", ErrInvalidGrid, v.Raw)
		}
	}
	return NewState(pos, points, endTurn)
}

// intOf accepts only JSON numbers that are whole and fit in an int32.
func intOf(r gjson.Result) (int, bool) {
	if r.Type != gjson.Number {
		return 0, false
	}
	f := r.Float()
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(r.Int()), true
}
