package dag

import (
	"cmp"
	"slices"

	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

// Arc is a directed child→parent edge tagged with the argument slot it fills.
type Arc struct {
	Child  string // Vertex supplying the value
	Parent string // Vertex consuming the value
	Index  int    // Argument position at Parent; unique per parent
}

// pair identifies an arc by its endpoints, ignoring the index.
type pair struct{ child, parent string }

// Graph is a set of vertices plus the arcs between them.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent mutation.
type Graph struct {
	vertices []string
	index    map[string]int    // label -> position in vertices
	arcs     []Arc             // insertion order
	pairs    map[pair]struct{} // (child, parent) already present
	slots    map[string]map[int]string
	children map[string][]Arc    // parent -> arcs, ascending Index
	parents  map[string][]string // child -> parents, insertion order
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		pairs:    make(map[pair]struct{}),
		slots:    make(map[string]map[int]string),
		children: make(map[string][]Arc),
		parents:  make(map[string][]string),
	}
}

// AddVertex records v if it has not been seen before.
// Adding an existing vertex is a no-op, so first-seen order is preserved.
func (g *Graph) AddVertex(v string) {
	if _, ok := g.index[v]; ok {
		return
	}
	g.index[v] = len(g.vertices)
	g.vertices = append(g.vertices, v)
}

// AddArc adds a child→parent arc, registering both endpoints as vertices.
//
// Returns a DUPLICATE_ARC error if the (Child, Parent) pair already exists,
// or a DUPLICATE_ARGUMENT_INDEX error if Parent already has an argument at
// Index. The graph is left unchanged on error. Errors carry no line number;
// callers reading from a file attach one with [errs.Error.AtLine].
func (g *Graph) AddArc(a Arc) error {
	key := pair{a.Child, a.Parent}
	if _, dup := g.pairs[key]; dup {
		return errs.New(errs.ErrCodeDuplicateArc,
			"duplicate arc (%s, %s, %d)", a.Child, a.Parent, a.Index).ForVertex(a.Parent)
	}
	if other, taken := g.slots[a.Parent][a.Index]; taken {
		return errs.New(errs.ErrCodeDuplicateArgumentIndex,
			"vertex %q has several arcs with order %d (%s and %s)", a.Parent, a.Index, other, a.Child).ForVertex(a.Parent)
	}

	g.pairs[key] = struct{}{}
	if g.slots[a.Parent] == nil {
		g.slots[a.Parent] = make(map[int]string)
	}
	g.slots[a.Parent][a.Index] = a.Child

	g.AddVertex(a.Child)
	g.AddVertex(a.Parent)
	g.arcs = append(g.arcs, a)

	kids := g.children[a.Parent]
	pos, _ := slices.BinarySearchFunc(kids, a.Index, func(e Arc, idx int) int { return cmp.Compare(e.Index, idx) })
	g.children[a.Parent] = slices.Insert(kids, pos, a)
	g.parents[a.Child] = append(g.parents[a.Child], a.Parent)
	return nil
}

// Vertices returns all vertex labels in first-seen order.
// The returned slice is a copy.
func (g *Graph) Vertices() []string { return slices.Clone(g.vertices) }

// Arcs returns a copy of all arcs in insertion order.
func (g *Graph) Arcs() []Arc { return slices.Clone(g.arcs) }

// SortedArcs returns a copy of all arcs stably sorted by ascending Index.
// This is the order used by the serialized graph format.
func (g *Graph) SortedArcs() []Arc {
	out := slices.Clone(g.arcs)
	slices.SortStableFunc(out, func(a, b Arc) int { return cmp.Compare(a.Index, b.Index) })
	return out
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// ArcCount returns the number of arcs in the graph.
func (g *Graph) ArcCount() int { return len(g.arcs) }

// HasVertex reports whether v is a vertex of the graph.
func (g *Graph) HasVertex(v string) bool {
	_, ok := g.index[v]
	return ok
}

// Position returns v's first-seen position, or -1 if v is not in the graph.
func (g *Graph) Position(v string) int {
	if i, ok := g.index[v]; ok {
		return i
	}
	return -1
}

// Children returns the vertices feeding v, ordered by ascending argument index.
// Returns nil if v has no children or doesn't exist.
func (g *Graph) Children(v string) []string {
	arcs := g.children[v]
	if len(arcs) == 0 {
		return nil
	}
	out := make([]string, len(arcs))
	for i, a := range arcs {
		out[i] = a.Child
	}
	return out
}

// ChildArcs returns the arcs into v, ordered by ascending argument index.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) ChildArcs(v string) []Arc { return g.children[v] }

// Parents returns the vertices v feeds, in arc insertion order.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) Parents(v string) []string { return g.parents[v] }

// IsLeaf reports whether v has no children.
func (g *Graph) IsLeaf(v string) bool { return len(g.children[v]) == 0 }

// Arity returns the number of children of v.
func (g *Graph) Arity(v string) int { return len(g.children[v]) }
