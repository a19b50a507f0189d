// Package expr renders an expression graph as nested function-call text.
//
// A leaf renders as "x()" and a vertex with children as "f(c1(), c2())",
// with children ordered by ascending argument index. Indices only need to be
// ordered, not contiguous, so arcs with indices 3 and 7 render exactly like
// arcs with indices 0 and 1.
//
// The output is the tree expansion of the graph: a vertex reachable through
// several parents is written out once under each of them. Graphs with heavy
// sharing therefore render to text far larger than the graph itself.
package expr

import (
	"strings"

	"github.com/matzehuels/exprgraph/pkg/dag"
)

// Render validates g and renders the expression rooted at its terminal
// vertex. Validation failures (CYCLE_DETECTED, AMBIGUOUS_TERMINAL) are
// returned unchanged.
func Render(g *dag.Graph) (string, error) {
	terminal, err := dag.Validate(g)
	if err != nil {
		return "", err
	}
	return RenderVertex(g, terminal), nil
}

// RenderVertex renders the subexpression rooted at v. The graph must be
// acyclic below v; use [Render] when that has not been established.
func RenderVertex(g *dag.Graph, v string) string {
	var b strings.Builder
	b.WriteString(v)
	b.WriteByte('(')

	// Each frame holds a vertex's ordered children and how many were emitted.
	type frame struct {
		kids []string
		next int
	}
	stack := []frame{{kids: g.Children(v)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.kids) {
			b.WriteByte(')')
			stack = stack[:len(stack)-1]
			continue
		}
		if top.next > 0 {
			b.WriteString(", ")
		}
		child := top.kids[top.next]
		top.next++

		b.WriteString(child)
		b.WriteByte('(')
		stack = append(stack, frame{kids: g.Children(child)})
	}
	return b.String()
}
