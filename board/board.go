// Package board implements the Sokoban grid representation: incremental
// push/unpush mutation and Zobrist-hashed state identity.
//
// A position on the board is a flat cell index y*W+x. Keeping positions as
// plain ints instead of (x,y) pairs keeps the push/reachability hot loops
// branch-light, the way engine/position.go keeps squares as a single int
// index into 64-bit bitboards rather than rank/file pairs.
package board

import "fmt"

// Push is a push move: Box is the position of the box before the push,
// Dir is the direction it is pushed in. See the doc comment on
// PerformUnpush for the exact convention this depends on.
type Push struct {
	Box int
	Dir Direction
}

// Board carries the grid geometry and the mutable box/player state. It is
// owned by a single Solver for the duration of a solve; auxiliary
// detectors hold non-owning read-only references to it.
type Board struct {
	W, H, Size int

	wall   []bool
	goalOf []int // goal index, or -1
	boxOf  []int // box index, or -1

	boxes []int // boxes[i] is the position of box i
	goals []int // goals[i] is the position of goal i

	player int

	goalsCompleted int

	boxKey    []uint64
	playerKey []uint64
	hash      uint64
}

// NewBoard builds a Board from a parsed grid. Rejects mismatched box/goal
// counts and illegal starting positions; these are input-malformed errors,
// not recoverable.
func NewBoard(w, h, player int, wall []bool, boxPositions, goalPositions []int) (*Board, error) {
	if len(boxPositions) != len(goalPositions) {
		return nil, ErrBoxGoalMismatch
	}
	size := w * h
	if player < 0 || player >= size {
		return nil, ErrOutOfBounds
	}
	if wall[player] {
		return nil, ErrPlayerOnWall
	}

	goalOf := make([]int, size)
	boxOf := make([]int, size)
	for i := range goalOf {
		goalOf[i] = -1
		boxOf[i] = -1
	}
	for i, pos := range goalPositions {
		goalOf[pos] = i
	}
	for i, pos := range boxPositions {
		if wall[pos] {
			return nil, ErrBoxOnWall
		}
		if boxOf[pos] != -1 {
			return nil, ErrDuplicateBox
		}
		boxOf[pos] = i
	}
	if boxOf[player] != -1 {
		return nil, ErrPlayerOnBox
	}

	boxes := make([]int, len(boxPositions))
	copy(boxes, boxPositions)
	goals := make([]int, len(goalPositions))
	copy(goals, goalPositions)

	boxKey, playerKey := newZobristKeys(size)

	b := &Board{
		W: w, H: h, Size: size,
		wall: wall, goalOf: goalOf, boxOf: boxOf,
		boxes: boxes, goals: goals,
		player:    player,
		boxKey:    boxKey,
		playerKey: playerKey,
	}
	b.recomputeGoalsCompleted()
	b.hash = b.computeHash()
	return b, nil
}

// --- read-only accessors ---

func (b *Board) IsWall(pos int) bool  { return b.wall[pos] }
func (b *Board) GoalAt(pos int) int   { return b.goalOf[pos] }
func (b *Board) BoxAt(pos int) int    { return b.boxOf[pos] }
func (b *Board) Player() int          { return b.player }
func (b *Board) NumBoxes() int        { return len(b.boxes) }
func (b *Board) BoxPos(i int) int     { return b.boxes[i] }
func (b *Board) GoalPos(i int) int    { return b.goals[i] }
func (b *Board) Hash() uint64         { return b.hash }
func (b *Board) Done() bool           { return b.goalsCompleted == len(b.boxes) }
func (b *Board) GoalsCompleted() int  { return b.goalsCompleted }
func (b *Board) HasBoxAt(pos int) bool { return b.boxOf[pos] != -1 }

// DumpText renders the current board state back to the textual level
// format, one row per line with no trailing newline after the last row.
// Used for graph-debug node labels, mirroring Board::DumpToText.
func (b *Board) DumpText() string {
	var sb []byte
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			pos := y*b.W + x
			var ch byte
			switch {
			case b.wall[pos]:
				ch = '#'
			case pos == b.player && b.goalOf[pos] != -1:
				ch = '+'
			case pos == b.player:
				ch = '@'
			case b.boxOf[pos] != -1 && b.goalOf[pos] != -1:
				ch = '*'
			case b.boxOf[pos] != -1:
				ch = '$'
			case b.goalOf[pos] != -1:
				ch = '.'
			default:
				ch = ' '
			}
			sb = append(sb, ch)
		}
		if y != b.H-1 {
			sb = append(sb, '\n')
		}
	}
	return string(sb)
}

// Boxes returns the current box positions, indexed by box id. The
// returned slice is owned by the caller.
func (b *Board) Boxes() []int {
	out := make([]int, len(b.boxes))
	copy(out, b.boxes)
	return out
}

// --- mutators (Solver-only) ---

// MoveBox relocates the box at from to to, updating goalsCompleted and the
// incremental hash. No-op if from == to. Preconditions (debug-checked
// only): to is not a wall, to holds no box, from holds a box.
func (b *Board) MoveBox(from, to int) {
	if from == to {
		return
	}
	assert(!b.wall[to], "MoveBox: destination %d is a wall", to)
	assert(b.boxOf[to] == -1, "MoveBox: destination %d already has a box", to)
	assert(b.boxOf[from] != -1, "MoveBox: source %d has no box", from)

	i := b.boxOf[from]
	b.boxOf[from] = -1
	b.boxOf[to] = i
	b.boxes[i] = to

	delta := 0
	if b.goalOf[to] != -1 {
		delta++
	}
	if b.goalOf[from] != -1 {
		delta--
	}
	b.goalsCompleted += delta
	b.hash ^= b.boxKey[from] ^ b.boxKey[to]
}

// MovePlayer relocates the player. No-op if already there. Precondition
// (debug-checked only): to is not a wall.
func (b *Board) MovePlayer(to int) {
	if b.player == to {
		return
	}
	assert(!b.wall[to], "MovePlayer: destination %d is a wall", to)
	b.hash ^= b.playerKey[b.player] ^ b.playerKey[to]
	b.player = to
}

// PerformPush executes push, moving its box one cell in p.Dir and the
// player into the box's old cell.
func (b *Board) PerformPush(p Push) {
	from := p.Box
	to, ok := b.Step(from, p.Dir)
	assert(ok, "PerformPush: box %d has no cell in direction %v", from, p.Dir)
	b.MoveBox(from, to)
	b.MovePlayer(from)
}

// PerformUnpush reverts a push built from the same Push value passed to
// PerformPush. The box at step(p.Box, p.Dir) (its current, post-push
// location) moves back to p.Box, and the player moves back to
// unstep(p.Box, p.Dir). PerformPush followed by PerformUnpush restores the
// board bit-for-bit, including hash and goalsCompleted.
func (b *Board) PerformUnpush(p Push) {
	from, ok := b.Step(p.Box, p.Dir)
	assert(ok, "PerformUnpush: no cell at step(%d, %v)", p.Box, p.Dir)
	b.MoveBox(from, p.Box)
	back, ok := b.Unstep(p.Box, p.Dir)
	assert(ok, "PerformUnpush: no cell at unstep(%d, %v)", p.Box, p.Dir)
	b.MovePlayer(back)
}

// ResetState bulk-restores player and box positions, recomputing
// goalsCompleted and the hash from scratch. Used by the Solver to
// materialize a popped SearchState onto the shared Board.
func (b *Board) ResetState(player int, boxes []int) {
	for _, pos := range b.boxes {
		b.boxOf[pos] = -1
	}
	copy(b.boxes, boxes)
	for i, pos := range b.boxes {
		b.boxOf[pos] = i
	}
	b.player = player
	b.recomputeGoalsCompleted()
	b.hash = b.computeHash()
}

func (b *Board) recomputeGoalsCompleted() {
	n := 0
	for _, pos := range b.boxes {
		if b.goalOf[pos] != -1 {
			n++
		}
	}
	b.goalsCompleted = n
}

// computeHash recomputes the Zobrist digest from scratch. Verify uses it
// to check that the incrementally maintained hash has not drifted.
func (b *Board) computeHash() uint64 {
	h := b.playerKey[b.player]
	for _, pos := range b.boxes {
		h ^= b.boxKey[pos]
	}
	return h
}

// Verify checks all structural invariants and returns the first violation
// found, or nil. Not called automatically by mutators (that
// would defeat the point of an incremental hash); call it from tests and
// debug tooling.
func (b *Board) Verify() error {
	if len(b.boxes) != len(b.goals) {
		return fmt.Errorf("board: |boxes|=%d != |goals|=%d", len(b.boxes), len(b.goals))
	}
	seen := make(map[int]bool, len(b.boxes))
	for i, pos := range b.boxes {
		if b.boxOf[pos] != i {
			return fmt.Errorf("board: boxOf[%d]=%d, want %d", pos, b.boxOf[pos], i)
		}
		if b.wall[pos] {
			return fmt.Errorf("board: box %d sits on wall at %d", i, pos)
		}
		if seen[pos] {
			return fmt.Errorf("board: two boxes at %d", pos)
		}
		seen[pos] = true
	}
	if b.wall[b.player] {
		return fmt.Errorf("board: player on wall at %d", b.player)
	}
	if b.boxOf[b.player] != -1 {
		return fmt.Errorf("board: player on box at %d", b.player)
	}
	if want := b.computeHash(); want != b.hash {
		return fmt.Errorf("board: hash %x, want %x (from-scratch)", b.hash, want)
	}
	gc := 0
	for _, pos := range b.boxes {
		if b.goalOf[pos] != -1 {
			gc++
		}
	}
	if gc != b.goalsCompleted {
		return fmt.Errorf("board: goalsCompleted=%d, want %d", b.goalsCompleted, gc)
	}
	return nil
}
