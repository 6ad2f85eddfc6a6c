// Package solver implements the A* main loop over push moves: an open
// priority queue keyed on f = g+h, a closed set, and a Board
// shared with (and mutated only by) the Solver while PushSearcher, the
// deadlock detectors, and the heuristic hold non-owning read references
// to it.
package solver

import (
	"container/heap"

	"sokosolve/board"
	"sokosolve/heuristic"
	"sokosolve/pushsearch"
)

// Result is what a Solve call reports: whether a solution was found
// within the state budget, how many states were expanded, and the
// optimal push count (-1 if unsolved).
type Result struct {
	Solved         bool
	StatesVisited  int
	PushesRequired int
}

// Solver owns the Board for the duration of a solve and constructs all
// auxiliary components in dependency order: the distance table and
// simple-deadlock table depend only on the static layout, the freeze
// detector depends on the simple-deadlock table, and PushSearcher
// depends on the simple-deadlock table too.
type Solver struct {
	b      *board.Board
	simple *board.SimpleDeadlockTable
	freeze *board.FreezeDeadlockDetector
	dt     *heuristic.DistanceTable
	hx     *heuristic.Heuristic
	ps     *pushsearch.PushSearcher

	log   Logger
	graph *GraphWriter
}

// New builds a Solver over b. b is subsequently owned by the Solver: no
// other code should mutate it while a solve is in progress.
func New(b *board.Board) *Solver {
	simple := board.NewSimpleDeadlockTable(b)
	dt := heuristic.NewDistanceTable(b)
	return &Solver{
		b:      b,
		simple: simple,
		freeze: board.NewFreezeDeadlockDetector(b, simple),
		dt:     dt,
		hx:     heuristic.New(dt),
		ps:     pushsearch.New(b, simple),
		log:    NulLogger{},
	}
}

// SetLogger installs an optional progress trace sink. The default is
// NulLogger: no I/O unless a caller opts in.
func (s *Solver) SetLogger(l Logger) { s.log = l }

// SetGraphWriter installs an optional Graphviz dump of the entire
// generated search tree, one node per visited-or-generated state. This
// is the "human-readable debug trace" collaborator: a graph, not a
// line-oriented log, matching the original solver's --dot/-d flag.
// Call Close on the writer once Solve returns.
func (s *Solver) SetGraphWriter(g *GraphWriter) { s.graph = g }

// Solve runs the bounded A* loop and returns once a solution is found,
// the open set is exhausted, or maxStates states have been visited.
func (s *Solver) Solve(maxStates int) Result {
	open := &openQueue{}
	heap.Init(open)
	openMap := make(map[uint64]*SearchState)
	closed := make(map[uint64]bool)
	seq := 0

	root, ok := s.makeRoot()
	if !ok {
		// Some box has no reachable goal even before the first push: the
		// level cannot be solved, and there is nothing left to search.
		return Result{Solved: false, StatesVisited: 0, PushesRequired: -1}
	}
	root.seq = seq
	seq++
	heap.Push(open, root)
	openMap[root.Hash] = root

	statesVisited := 0
	for open.Len() > 0 && statesVisited < maxStates {
		cur := heap.Pop(open).(*SearchState)
		if openMap[cur.Hash] != cur {
			continue // stale: superseded by a cheaper path, already popped
		}
		delete(openMap, cur.Hash)
		if closed[cur.Hash] {
			continue
		}
		closed[cur.Hash] = true
		statesVisited++

		s.b.ResetState(cur.Player, cur.Boxes)
		if s.b.Done() {
			s.log.Printf("solved: g=%d states_visited=%d", cur.G, statesVisited)
			return Result{Solved: true, StatesVisited: statesVisited, PushesRequired: cur.G}
		}

		if s.graph != nil {
			s.graph.Node(s.b, cur.Hash, cur.G, cur.H)
		}

		for _, p := range cur.Pushes {
			s.expand(cur, p, open, openMap, closed, &seq)
		}
	}

	s.log.Printf("exhausted: states_visited=%d", statesVisited)
	return Result{Solved: false, StatesVisited: statesVisited, PushesRequired: -1}
}

// expand tries one push from cur's already-restored board state, pruning
// on freeze deadlock, closed membership, and a worse-or-equal open entry,
// then inserts a child SearchState. The board is always left exactly as
// cur.Boxes/cur.Player on return (push followed by matching unpush).
func (s *Solver) expand(cur *SearchState, p board.Push, open *openQueue, openMap map[uint64]*SearchState, closed map[uint64]bool, seq *int) {
	landing, _ := s.b.Step(p.Box, p.Dir)
	s.b.PerformPush(p)
	defer s.b.PerformUnpush(p)

	if s.freeze.Deadlock(landing) {
		return
	}

	res := s.ps.Search()
	s.b.MovePlayer(res.NormalizedPlayer)
	childHash := s.b.Hash()

	if closed[childHash] {
		return
	}
	if existing, ok := openMap[childHash]; ok && cur.G+1 >= existing.G {
		return
	}

	h, ok := s.hx.Estimate(s.b.Boxes())
	if !ok {
		return // some box now has no reachable goal: a dead end, prune it
	}

	if s.graph != nil {
		s.graph.Node(s.b, childHash, cur.G+1, h)
		s.graph.Edge(cur.Hash, childHash)
	}

	child := &SearchState{
		Hash:       childHash,
		Player:     s.b.Player(),
		Boxes:      s.b.Boxes(),
		Pushes:     res.Pushes,
		IsPiCorral: res.IsPiCorral,
		G:          cur.G + 1,
		H:          h,
		F:          cur.G + 1 + h,
		seq:        *seq,
	}
	*seq++
	heap.Push(open, child)
	openMap[childHash] = child
}

// makeRoot builds the initial SearchState, normalizing the player and
// computing the starting heuristic.
func (s *Solver) makeRoot() (*SearchState, bool) {
	res := s.ps.Search()
	s.b.MovePlayer(res.NormalizedPlayer)

	h, ok := s.hx.Estimate(s.b.Boxes())
	if !ok {
		return nil, false
	}
	return &SearchState{
		Hash:       s.b.Hash(),
		Player:     s.b.Player(),
		Boxes:      s.b.Boxes(),
		Pushes:     res.Pushes,
		IsPiCorral: res.IsPiCorral,
		G:          0,
		H:          h,
		F:          h,
	}, true
}
