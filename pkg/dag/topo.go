package dag

import (
	"strings"

	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

// TopoSort orders the vertices so every child precedes all of its parents.
//
// TopoSort uses Kahn's elimination on the child→parent direction: each vertex
// starts with a count of unresolved children, vertices with none are resolved
// first (in first-seen order), and resolving a vertex decrements the count of
// each of its parents. If fewer than VertexCount vertices are resolved the
// graph contains a cycle and TopoSort returns a CYCLE_DETECTED error listing
// the unresolved vertices in first-seen order. No partial order is returned.
//
// Time complexity is O(V + E). The graph is not modified.
func TopoSort(g *Graph) ([]string, error) {
	pending := make(map[string]int, len(g.vertices))
	queue := make([]string, 0, len(g.vertices))
	for _, v := range g.vertices {
		n := len(g.children[v])
		pending[v] = n
		if n == 0 {
			queue = append(queue, v)
		}
	}

	order := make([]string, 0, len(g.vertices))
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)

		for _, p := range g.parents[v] {
			pending[p]--
			if pending[p] == 0 {
				queue = append(queue, p)
			}
		}
	}

	if len(order) < len(g.vertices) {
		var stuck []string
		for _, v := range g.vertices {
			if pending[v] > 0 {
				stuck = append(stuck, v)
			}
		}
		return nil, errs.New(errs.ErrCodeCycleDetected,
			"graph contains a cycle through %s", strings.Join(stuck, ", "))
	}
	return order, nil
}

// Terminals returns every vertex that is never the child of an arc, in
// first-seen order. A valid graph has exactly one.
func Terminals(g *Graph) []string {
	var out []string
	for _, v := range g.vertices {
		if len(g.parents[v]) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// Terminal resolves the unique terminal vertex: the only vertex that never
// appears as the child of any arc. It is the output of evaluation and the
// root of the rendered expression.
//
// Returns an AMBIGUOUS_TERMINAL error when there are zero candidates (an
// empty graph) or more than one. Both cases are reported with the same code.
func Terminal(g *Graph) (string, error) {
	candidates := Terminals(g)
	if len(candidates) != 1 {
		msg := "graph must have exactly one terminal vertex, found none"
		if len(candidates) > 1 {
			msg = "graph must have exactly one terminal vertex, found " + strings.Join(candidates, ", ")
		}
		return "", errs.New(errs.ErrCodeAmbiguousTerminal, "%s", msg)
	}
	return candidates[0], nil
}

// Validate runs both structural checks and returns the terminal vertex.
// Cycle detection runs first, so a cyclic graph reports CYCLE_DETECTED even
// if its terminal is also ambiguous.
func Validate(g *Graph) (string, error) {
	if _, err := TopoSort(g); err != nil {
		return "", err
	}
	return Terminal(g)
}

// Depths assigns each vertex the length of its longest path down to a leaf.
// Leaves have depth 0 and a parent sits one above its deepest child, so the
// terminal's depth bounds the nesting of the rendered expression.
//
// order must be a topological order from [TopoSort].
func Depths(g *Graph, order []string) map[string]int {
	depth := make(map[string]int, len(order))
	for _, v := range order {
		if _, ok := depth[v]; !ok {
			depth[v] = 0
		}
		for _, p := range g.parents[v] {
			if d := depth[v] + 1; d > depth[p] {
				depth[p] = d
			}
		}
	}
	return depth
}
