// Package dag provides the labeled argument graph that exprgraph builds,
// validates, renders and evaluates.
//
// # Overview
//
// A [Graph] is a set of string-labeled vertices plus a list of [Arc] values.
// An arc (child, parent, index) says that child supplies the parent's
// index-th argument. Read as a computation, values flow from children to
// parents and the single vertex that is never a child is the final output,
// called the terminal vertex. Read as an expression, the terminal vertex is
// the root of a call tree such as f(x, g(y, z)).
//
// # Building
//
// Create a graph with [New] and add arcs with [Graph.AddArc], or parse the
// textual arc list format with [ParseRecords]:
//
//	g, err := dag.ParseRecords([]string{
//	    "(x, f, 0), (g, f, 1)",
//	    "(y, g, 0), (z, g, 1)",
//	})
//
// Two invariants are checked incrementally as arcs arrive:
//
//   - No two arcs share the same (child, parent) pair (DUPLICATE_ARC)
//   - No two arcs under one parent share an argument index (DUPLICATE_ARGUMENT_INDEX)
//
// Vertices are recorded in first-seen order. That order only makes listings
// and error messages deterministic; it never affects evaluation order.
//
// # Validation
//
// [Validate] runs the two structural checks every downstream stage needs:
// [TopoSort] proves the graph acyclic by Kahn elimination (CYCLE_DETECTED
// otherwise) and [Terminal] resolves the unique vertex that never appears as a
// child (AMBIGUOUS_TERMINAL otherwise). Both are pure and run in O(V + E).
//
// # Argument Order
//
// [Graph.Children] returns a vertex's children ordered by ascending argument
// index. Indices need not be contiguous or start at zero; only their relative
// order matters.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Once built it is treated as
// read-only by the rest of the pipeline, and concurrent readers are safe.
package dag
