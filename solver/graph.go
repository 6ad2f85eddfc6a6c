package solver

import (
	"fmt"
	"io"
	"strings"

	"sokosolve/board"
)

// GraphWriter renders the entire generated search tree as a Graphviz
// digraph, one node per visited-or-generated state labelled with its
// board dump and g/h/c values, with parent->child edges — the
// "--dot" debug graph a solve can optionally be run with.
type GraphWriter struct {
	w io.Writer
}

// NewGraphWriter wraps w and writes the digraph header immediately.
func NewGraphWriter(w io.Writer) *GraphWriter {
	g := &GraphWriter{w: w}
	fmt.Fprintln(g.w, "digraph {")
	fmt.Fprintln(g.w, `  node [fontname="Courier New" fontsize=10]`)
	fmt.Fprintln(g.w, `  edge [fontname="Courier New" fontsize=10]`)
	return g
}

// Close writes the closing brace. Call once, after the solve finishes.
func (g *GraphWriter) Close() {
	fmt.Fprintln(g.w, "}")
}

// Node emits one state as a labelled digraph node.
func (g *GraphWriter) Node(b *board.Board, hash uint64, gValue, hValue int) {
	label := strings.ReplaceAll(b.DumpText(), "\n", `\n`)
	fmt.Fprintf(g.w, "  %d[label=\"%s\\ng=%d h=%d c=%d\"]\n",
		hash, label, gValue, hValue, b.GoalsCompleted())
}

// Edge emits a parent->child edge between two already-emitted nodes.
func (g *GraphWriter) Edge(hashFrom, hashTo uint64) {
	fmt.Fprintf(g.w, "  %d -> %d\n", hashFrom, hashTo)
}
