// Package pkg provides the libraries behind exprgraph, a tool for arithmetic
// expressions written as graphs.
//
// # Overview
//
// An expression graph is a set of labeled vertices joined by arcs
// (child, parent, index). Each arc makes the child the index-th argument of
// the parent. A valid graph is acyclic and has exactly one terminal vertex
// (a vertex that is never a child), and that vertex is the whole expression.
//
// # Architecture
//
// The typical data flow through exprgraph:
//
//	Arc list / serialized graph
//	         ↓
//	    [dag] package (build, check arc and index uniqueness)
//	         ↓
//	    [dag] package (topological order, terminal vertex)
//	         ↓
//	    [render/expr] or [render/nodelink]    [eval] with an [ops] table
//	         ↓                                        ↓
//	    "f(g(x()), y())" / DOT / SVG          terminal value
//
// # Quick Start
//
//	g, _ := dag.ParseRecords([]string{"(x, g, 0)", "(g, f, 0), (y, f, 1)"})
//
//	text, _ := expr.Render(g) // "f(g(x()), y())"
//
//	table := ops.FromMap(map[string]string{"x": "0", "y": "3", "g": "exp", "f": "+"})
//	v, _ := eval.Evaluate(g, table) // 4
//
// # Main Packages
//
// ## Core
//
// [dag] - The graph: vertices in first-seen order, arcs with per-parent
// argument indices, arc-list parsing, topological sort and validation.
//
// [ops] - Operation tables. Entries resolve once to sum, product, exp, a
// numeric literal, or invalid.
//
// [eval] - Memoized evaluation with an explicit stack and a per-vertex trace.
//
// [render/expr] - Nested call text for the terminal or any vertex.
//
// [render/nodelink] - Graphviz diagrams with arcs labeled by argument index.
//
// [errors] - Coded errors shared by every package.
//
// ## Infrastructure
//
// [io] - File formats: arc lists, serialized graph JSON, operations files.
//
// [pipeline] - Build, validate, evaluate and render stages with caching,
// timing, logging and hooks. Used by the CLI.
//
// [cache] - Content-addressed result cache (file, Redis, null).
//
// [config] - TOML configuration.
//
// [observability] - Pipeline and cache hooks.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/eval/...     # Specific package
//	go test -run Example ./... # Examples only
//	go test -short ./...       # Skip Graphviz rendering
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/dag
// [ops]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/ops
// [eval]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/eval
// [render/expr]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/render/expr
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/exprgraph/pkg/observability
package pkg
