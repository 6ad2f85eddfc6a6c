// Package level parses and dumps the ASCII Sokoban level text format and
// wires the result into a board.Board.
package level

import (
	"fmt"
	"strings"

	"sokosolve/board"
)

// Input-malformed errors: surfaced to the caller, not recoverable.
var (
	ErrUnrecognizedChar = fmt.Errorf("level: unrecognized character")
	ErrNoPlayer         = fmt.Errorf("level: no player cell in level")
	ErrMultiplePlayers  = fmt.Errorf("level: more than one player cell in level")
	ErrEmptyLevel       = fmt.Errorf("level: no non-blank rows")
)

// Level is a parsed grid ready to build a Board from, or to dump back to
// text.
type Level struct {
	W, H    int
	Wall    []bool
	Boxes   []int
	Goals   []int
	Player  int
}

// Parse reads the textual level format: trailing whitespace is stripped
// per line, blank lines are skipped entirely, W is the widest remaining
// row, and shorter rows are right-padded with floor.
func Parse(text string) (*Level, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyLevel
	}

	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	h := len(rows)
	size := w * h

	lvl := &Level{W: w, H: h, Wall: make([]bool, size), Player: -1}
	for y, row := range rows {
		for x := 0; x < w; x++ {
			c := byte(' ')
			if x < len(row) {
				c = row[x]
			}
			pos := y*w + x
			isGoal := false
			switch c {
			case '#':
				lvl.Wall[pos] = true
			case ' ':
				// floor
			case '@':
				if err := lvl.setPlayer(pos); err != nil {
					return nil, err
				}
			case '+':
				if err := lvl.setPlayer(pos); err != nil {
					return nil, err
				}
				isGoal = true
			case '$':
				lvl.Boxes = append(lvl.Boxes, pos)
			case '*':
				lvl.Boxes = append(lvl.Boxes, pos)
				isGoal = true
			case '.':
				isGoal = true
			default:
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrUnrecognizedChar, c, y, x)
			}
			if isGoal {
				lvl.Goals = append(lvl.Goals, pos)
			}
		}
	}
	if lvl.Player == -1 {
		return nil, ErrNoPlayer
	}
	return lvl, nil
}

func (l *Level) setPlayer(pos int) error {
	if l.Player != -1 {
		return ErrMultiplePlayers
	}
	l.Player = pos
	return nil
}

// Dump renders l back to the textual format. The player character
// dominates goal/box display at the player's own cell.
func (l *Level) Dump() string {
	boxAt := make(map[int]bool, len(l.Boxes))
	for _, p := range l.Boxes {
		boxAt[p] = true
	}
	goalAt := make(map[int]bool, len(l.Goals))
	for _, p := range l.Goals {
		goalAt[p] = true
	}

	var sb strings.Builder
	for y := 0; y < l.H; y++ {
		for x := 0; x < l.W; x++ {
			pos := y*l.W + x
			sb.WriteByte(l.cellChar(pos, boxAt, goalAt))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (l *Level) cellChar(pos int, boxAt, goalAt map[int]bool) byte {
	switch {
	case l.Wall[pos]:
		return '#'
	case pos == l.Player && goalAt[pos]:
		return '+'
	case pos == l.Player:
		return '@'
	case boxAt[pos] && goalAt[pos]:
		return '*'
	case boxAt[pos]:
		return '$'
	case goalAt[pos]:
		return '.'
	default:
		return ' '
	}
}

// Board constructs a board.Board from the parsed level.
func (l *Level) Board() (*board.Board, error) {
	return board.NewBoard(l.W, l.H, l.Player, l.Wall, l.Boxes, l.Goals)
}
