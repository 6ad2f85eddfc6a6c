// Package pushsearch implements player-reachability analysis and legal
// push enumeration through a three-stage PushSearcher: reachability DFS
// plus push enumeration, PI-corral pruning, then simple-deadlock
// filtering.
package pushsearch

import "sokosolve/board"

// Result is what one Search call produces: the canonical (normalized)
// player position for the current reachable region, the surviving legal
// pushes, and whether the push list was narrowed by PI-corral pruning.
type Result struct {
	NormalizedPlayer int
	Pushes           []board.Push
	IsPiCorral       bool
}

// PushSearcher holds the scratch state reused across invocations: two
// generation-stamped visited arrays (one for player reachability, one for
// corral flood fills) so repeated searches don't need to re-zero a slice
// every call.
type PushSearcher struct {
	b      *board.Board
	simple *board.SimpleDeadlockTable

	reachStamp []int
	reachGen   int

	corralStamp []int
	corralGen   int
}

// New builds a PushSearcher over b, consulting simple for stage 3's
// deadlock filter.
func New(b *board.Board, simple *board.SimpleDeadlockTable) *PushSearcher {
	return &PushSearcher{
		b:           b,
		simple:      simple,
		reachStamp:  make([]int, b.Size),
		corralStamp: make([]int, b.Size),
	}
}

// Search runs all three stages against the board's current state.
func (s *PushSearcher) Search() Result {
	pushes, normalized := s.reach()

	if edge, ok := s.findPiCorral(pushes); ok {
		pushes = keepEdgeBoxPushes(pushes, edge)
		return Result{NormalizedPlayer: normalized, Pushes: s.filterSimpleDeadlocks(pushes), IsPiCorral: true}
	}
	return Result{NormalizedPlayer: normalized, Pushes: s.filterSimpleDeadlocks(pushes)}
}

// reach is stage 1: DFS from the current player over non-wall, non-box
// cells, emitting every legal push seen along the way and tracking the
// lexicographically smallest visited cell (the normalized player).
func (s *PushSearcher) reach() ([]board.Push, int) {
	s.reachGen++
	gen := s.reachGen
	start := s.b.Player()
	s.reachStamp[start] = gen

	normalized := start
	var pushes []board.Push
	s.reachDFS(start, gen, &pushes, &normalized)
	return pushes, normalized
}

func (s *PushSearcher) reachDFS(p, gen int, pushes *[]board.Push, normalized *int) {
	if p < *normalized {
		*normalized = p
	}

	for _, d := range board.Directions {
		boxPos, ok := s.b.Step(p, d)
		if !ok || !s.b.HasBoxAt(boxPos) {
			continue
		}
		landing, ok := s.b.Step(boxPos, d)
		if !ok || s.b.IsWall(landing) || s.b.HasBoxAt(landing) {
			continue
		}
		*pushes = append(*pushes, board.Push{Box: boxPos, Dir: d})
	}

	for _, d := range board.Directions {
		n, ok := s.b.Step(p, d)
		if !ok || s.b.IsWall(n) || s.b.HasBoxAt(n) || s.reachStamp[n] == gen {
			continue
		}
		s.reachStamp[n] = gen
		s.reachDFS(n, gen, pushes, normalized)
	}
}

func (s *PushSearcher) reachable(pos int) bool {
	return s.reachStamp[pos] == s.reachGen
}

// findPiCorral is stage 2. It examines, in enumeration order, every push
// whose landing cell lies outside the player's reachable region, flood
// fills that corral, and returns the first corral that qualifies for
// pruning. Only the first qualifying corral is used.
func (s *PushSearcher) findPiCorral(pushes []board.Push) (map[int]bool, bool) {
	s.corralGen++
	gen := s.corralGen

	for _, p := range pushes {
		landing, _ := s.b.Step(p.Box, p.Dir)
		if s.reachable(landing) || s.corralStamp[landing] == gen {
			continue
		}
		edge := s.floodCorral(landing, gen)
		if s.corralQualifies(gen, edge) {
			return edge, true
		}
	}
	return nil, false
}

// floodCorral explores the unreached region starting at start, returning
// the set of box positions bordering it (the edge boxes). Walls and the
// already player-reachable region are not traversed; boxes are recorded
// as edges rather than traversed through.
func (s *PushSearcher) floodCorral(start, gen int) map[int]bool {
	s.corralStamp[start] = gen
	stack := []int{start}
	edge := make(map[int]bool)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range board.Directions {
			n, ok := s.b.Step(p, d)
			if !ok {
				continue
			}
			if s.b.HasBoxAt(n) {
				edge[n] = true
				continue
			}
			if s.b.IsWall(n) || s.reachable(n) || s.corralStamp[n] == gen {
				continue
			}
			s.corralStamp[n] = gen
			stack = append(stack, n)
		}
	}
	return edge
}

// corralQualifies checks the two PI-corral conditions: at least one edge
// box is off-goal, and every legal push of every edge box
// that the player could make right now (its cell is among Stage 1's
// pushes) lands inside the corral. A push the player cannot currently make
// imposes no constraint: the entrance push that discovered this corral is
// itself always "legal, lands outside the corral, player not yet
// positioned to reverse it" in the degenerate sense of its own reverse
// direction, so only gating on currently-makeable pushes keeps the check
// meaningful instead of vacuously false for every corral.
func (s *PushSearcher) corralQualifies(gen int, edgeBoxPositions map[int]bool) bool {
	if len(edgeBoxPositions) == 0 {
		return false
	}
	anyOffGoal := false
	for pos := range edgeBoxPositions {
		if s.b.GoalAt(pos) == -1 {
			anyOffGoal = true
			break
		}
	}
	if !anyOffGoal {
		return false
	}

	for pos := range edgeBoxPositions {
		for _, d := range board.Directions {
			landing, ok := s.b.Step(pos, d)
			if !ok || s.b.IsWall(landing) || s.b.HasBoxAt(landing) {
				continue // not a legal push in this direction
			}
			behind, ok := s.b.Unstep(pos, d)
			if !ok || !s.reachable(behind) {
				continue // player cannot currently make this push
			}
			if s.corralStamp[landing] != gen {
				return false // a currently makeable push escapes the corral
			}
		}
	}
	return true
}

func keepEdgeBoxPushes(pushes []board.Push, edgeBoxPositions map[int]bool) []board.Push {
	out := make([]board.Push, 0, len(pushes))
	for _, p := range pushes {
		if edgeBoxPositions[p.Box] {
			out = append(out, p)
		}
	}
	return out
}

// filterSimpleDeadlocks is stage 3: discard any push whose landing cell
// is a simple-deadlock cell.
func (s *PushSearcher) filterSimpleDeadlocks(pushes []board.Push) []board.Push {
	out := pushes[:0]
	for _, p := range pushes {
		landing, _ := s.b.Step(p.Box, p.Dir)
		if !s.simple.IsDeadlock(landing) {
			out = append(out, p)
		}
	}
	return out
}
