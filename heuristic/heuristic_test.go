package heuristic

import (
	"testing"

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

func openRoom() (w, h int, wall []bool) {
	return rowsToWalls([]string{
		"#######",
		"#     #",
		"#     #",
		"#######",
	})
}

func twoSealedRooms() (w, h int, wall []bool) {
	return rowsToWalls([]string{
		"#########",
		"#   #   #",
		"#########",
	})
}

func TestDistanceTableReachable(t *testing.T) {
	w, h, wall := openRoom()
	b, err := board.NewBoard(w, h, 8, wall, []int{9}, []int{12})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	dt := NewDistanceTable(b)
	if dt.NumGoals() != 1 {
		t.Fatalf("NumGoals()=%d, want 1", dt.NumGoals())
	}
	// goal at 12 (x=5,y=1); box at 9 (x=2,y=1): straight line, distance 3.
	if d := dt.Dist(0, 9); d != 3 {
		t.Fatalf("Dist(goal,9)=%d, want 3", d)
	}
	if d := dt.Dist(0, 12); d != 0 {
		t.Fatalf("Dist(goal,goal)=%d, want 0", d)
	}
}

func TestDistanceTableUnreachable(t *testing.T) {
	w, h, wall := twoSealedRooms()
	// left room floor: 10,11,12; right room floor: 14,15,16.
	b, err := board.NewBoard(w, h, 10, wall, []int{15}, []int{11})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	dt := NewDistanceTable(b)
	if d := dt.Dist(0, 15); d != -1 {
		t.Fatalf("Dist across a sealed wall = %d, want -1", d)
	}
}

func TestHeuristicGreedyMatching(t *testing.T) {
	w, h, wall := openRoom()
	// goals at 9 and 12 (x=2 and x=5, y=1); boxes at 8 and 11.
	b, err := board.NewBoard(w, h, 10, wall, []int{8, 11}, []int{9, 12})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	dt := NewDistanceTable(b)
	hx := New(dt)

	total, ok := hx.Estimate(b.Boxes())
	if !ok {
		t.Fatalf("Estimate reported no assignment")
	}
	// box 8 -> goal 9 (dist 1), box 11 -> goal 12 (dist 1): total 2.
	if total != 2 {
		t.Fatalf("Estimate()=%d, want 2", total)
	}
}

func TestHeuristicUnreachableBoxIsDeadEnd(t *testing.T) {
	w, h, wall := twoSealedRooms()
	b, err := board.NewBoard(w, h, 10, wall, []int{15}, []int{11})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	dt := NewDistanceTable(b)
	hx := New(dt)

	if _, ok := hx.Estimate(b.Boxes()); ok {
		t.Fatalf("Estimate should report false when a box has no reachable goal")
	}
}
