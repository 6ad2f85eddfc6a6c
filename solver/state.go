package solver

import "sokosolve/board"

// SearchState is a heap-allocated A* node: a snapshot sufficient to
// restore the Board on pop, plus the push list computed once at creation
// and reused to expand children.
type SearchState struct {
	Hash   uint64
	Player int
	Boxes  []int

	Pushes     []board.Push
	IsPiCorral bool

	G int // push count from root
	H int // heuristic estimate
	F int // g + h

	seq int // monotonic insertion order, used only to break f ties FIFO

	index int // maintained by container/heap; do not set directly
}
