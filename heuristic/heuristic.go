package heuristic

// Heuristic estimates the remaining pushes to a solved state by greedily
// matching each box to its nearest still-unclaimed goal. This one-pass
// greedy assignment is not globally optimal: its total is never below the
// optimal assignment cost and can exceed it, so the estimate is not
// guaranteed to be admissible.
type Heuristic struct {
	dt *DistanceTable
}

// New builds a Heuristic over the given distance table.
func New(dt *DistanceTable) *Heuristic {
	return &Heuristic{dt: dt}
}

// Estimate returns the greedy-matched total distance for boxes, and false
// if some box has no reachable goal left in the pool once earlier boxes
// claimed theirs — in that case the state is treated as a dead end rather
// than assigned a (necessarily inadmissible) distance through an
// unreachable pairing.
func (h *Heuristic) Estimate(boxes []int) (int, bool) {
	n := h.dt.NumGoals()
	used := make([]bool, n)
	total := 0

	for _, box := range boxes {
		bestGoal, bestDist := -1, -1
		for g := 0; g < n; g++ {
			if used[g] {
				continue
			}
			d := h.dt.Dist(g, box)
			if d == -1 {
				continue
			}
			if bestGoal == -1 || d < bestDist {
				bestGoal, bestDist = g, d
			}
		}
		if bestGoal == -1 {
			return 0, false
		}
		used[bestGoal] = true
		total += bestDist
	}
	return total, true
}
