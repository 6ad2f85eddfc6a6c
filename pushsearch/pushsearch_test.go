package pushsearch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sokosolve/board"
)

func rowsToWalls(rows []string) (w, h int, wall []bool) {
	h = len(rows)
	w = len(rows[0])
	wall = make([]bool, w*h)
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				wall[y*w+x] = true
			}
		}
	}
	return w, h, wall
}

func TestSearchOpenRoomEnumeratesPushesAndNormalizes(t *testing.T) {
	w, h, wall := rowsToWalls([]string{
		"#####",
		"#   #",
		"# $ #",
		"#   #",
		"#####",
	})
	// player bottom-left interior corner, box in the middle.
	b, err := board.NewBoard(w, h, 16, wall, []int{12}, []int{7})
	require.NoError(t, err)
	simple := board.NewSimpleDeadlockTable(b)
	s := New(b, simple)

	res := s.Search()
	require.False(t, res.IsPiCorral, "an open room should never trigger PI-corral pruning")
	require.Equal(t, 6, res.NormalizedPlayer, "want the lexicographically smallest reachable cell")
	require.Lenf(t, res.Pushes, 1, "of the box's 4 legal pushes only the one onto the goal at 7 avoids a simple-deadlock landing: %+v", res.Pushes)
}

// TestSearchFiltersSimpleDeadlockLandings uses a two-row room where the
// goal only sits in the bottom row: reverse-pull BFS from it can never
// climb into the top row (the ceiling always blocks the second free cell
// a pull needs), so every top-row cell is a simple deadlock — including
// both cells the lone box could be pushed into.
func TestSearchFiltersSimpleDeadlockLandings(t *testing.T) {
	rows := []string{
		"#######",
		"#     #",
		"#     #",
		"#######",
	}
	w, h, wall := rowsToWalls(rows)
	b, err := board.NewBoard(w, h, 19, wall, []int{9}, []int{16})
	require.NoError(t, err)
	simple := board.NewSimpleDeadlockTable(b)
	require.True(t, simple.IsDeadlock(8) && simple.IsDeadlock(10),
		"test setup: expected both of the box's push targets to be simple deadlocks")

	s := New(b, simple)
	res := s.Search()
	require.Emptyf(t, res.Pushes, "expected every push filtered out by the simple-deadlock check")
}

// TestSearchPiCorralPrunesToEdgeBox builds a single box sealed behind a
// one-cell pocket the player cannot yet reach: the box's only currently
// makeable push is the one entering the pocket, and it lands inside it, so
// the corral qualifies and pruning keeps exactly that push.
func TestSearchPiCorralPrunesToEdgeBox(t *testing.T) {
	rows := []string{
		"#####",
		"#@$ #",
		"#####",
	}
	w, h, wall := rowsToWalls(rows)
	// player=1 (x1,y1)=6, box=2 (x2,y1)=7, goal=3 (x3,y1)=8 (the pocket).
	b, err := board.NewBoard(w, h, 6, wall, []int{7}, []int{8})
	require.NoError(t, err)
	simple := board.NewSimpleDeadlockTable(b)
	s := New(b, simple)

	res := s.Search()
	require.True(t, res.IsPiCorral, "expected PI-corral pruning to trigger")
	require.Equal(t, []board.Push{{Box: 7, Dir: board.Right}}, res.Pushes)
}
