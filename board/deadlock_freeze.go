package board

// FreezeDeadlockDetector dynamically checks, after a push lands a box on
// some cell, whether the resulting static configuration guarantees at
// least one box is stuck off-goal forever. Recursion depth is bounded by
// the number of boxes (typically well under 50), so a plain recursive DFS
// is used rather than an explicit stack.
type FreezeDeadlockDetector struct {
	b      *Board
	simple *SimpleDeadlockTable

	visited   []bool
	boxesSeen int
	goalsSeen int
}

// NewFreezeDeadlockDetector builds a detector over b, consulting simple
// to tighten the axis-frozen check: a direction whose front cell is a
// simple deadlock counts as blocked, since sliding the box there would
// not help it reach a goal.
func NewFreezeDeadlockDetector(b *Board, simple *SimpleDeadlockTable) *FreezeDeadlockDetector {
	return &FreezeDeadlockDetector{
		b:       b,
		simple:  simple,
		visited: make([]bool, b.Size),
	}
}

// Deadlock reports whether the box at pos (just pushed there) is part of
// a frozen cluster with at least one box off-goal.
func (f *FreezeDeadlockDetector) Deadlock(pos int) bool {
	for i := range f.visited {
		f.visited[i] = false
	}
	f.boxesSeen = 0
	f.goalsSeen = 0
	return f.frozen(pos) && f.goalsSeen < f.boxesSeen
}

// frozen reports whether the box at p is immobilized: along both axes,
// neither end is movable. A neighbouring box makes the wall-side of that
// axis count as blocked too, recursively.
func (f *FreezeDeadlockDetector) frozen(p int) bool {
	f.visited[p] = true
	f.boxesSeen++
	if f.b.goalOf[p] != -1 {
		f.goalsSeen++
	}

	for _, d := range Directions {
		front, hasFront := f.b.Step(p, d)
		if !hasFront || f.b.wall[front] {
			continue
		}
		back, hasBack := f.b.Unstep(p, d)
		if !hasBack || f.b.wall[back] {
			continue
		}
		if f.b.boxOf[back] != -1 {
			continue
		}
		if f.simple.IsDeadlock(front) {
			continue
		}
		if f.b.boxOf[front] == -1 {
			return false // p can slide toward front: free along (d, opposite d)
		}
		if !f.visited[front] && !f.frozen(front) {
			return false // neighbour box is itself mobile, so p can follow it
		}
	}
	return true
}
