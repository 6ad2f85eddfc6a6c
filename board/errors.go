package board

import "fmt"

// Input-malformed errors, surfaced from NewBoard. Not recoverable: the
// caller constructed a Board from bad data.
var (
	ErrBoxGoalMismatch = fmt.Errorf("board: number of boxes must equal number of goals")
	ErrPlayerOnWall    = fmt.Errorf("board: player stands on a wall")
	ErrPlayerOnBox     = fmt.Errorf("board: player stands on a box")
	ErrBoxOnWall       = fmt.Errorf("board: box stands on a wall")
	ErrDuplicateBox    = fmt.Errorf("board: two boxes occupy the same cell")
	ErrOutOfBounds     = fmt.Errorf("board: position outside the grid")
)

// Debug enables invariant assertions meant only for development and
// tests. A failed assertion indicates a bug, never an expected runtime
// condition; in release (Debug == false) the mutators skip the checks
// entirely to stay allocation- and branch-light in the search hot loop.
var Debug = false

func assert(cond bool, format string, args ...interface{}) {
	if Debug && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
