// Package io reads and writes the files that connect the pipeline stages.
//
// # Overview
//
// Four formats are handled:
//
//   - Arc list: the text input to graph building, see [ReadArcs]
//   - Serialized graph: the JSON handoff between building and later stages,
//     see [ReadJSON] and [WriteJSON]
//   - Operation table: the framed "key: value" file, see [ReadOps]
//   - Text result: a single line holding a rendering or a value, see
//     [WriteText]
//
// # JSON Format
//
// The serialized graph has two required top-level arrays:
//
//	{
//	    "vertices": ["x", "f", "y"],
//	    "arcs": [
//	        {"from": "x", "to": "f", "order": 0},
//	        {"from": "y", "to": "f", "order": 1}
//	    ]
//	}
//
// "from" is the child, "to" the parent and "order" the argument index.
// Vertices keep first-seen order. Arcs are written sorted by order, with ties
// kept in input order. Output is indented by four spaces and non-ASCII labels
// are written verbatim rather than escaped.
//
// # Import
//
// Reading a serialized graph re-checks everything graph building checks:
// labels must be valid, every arc endpoint must be a listed vertex, and the
// duplicate arc and duplicate argument index rules apply. Structural
// validation (cycles, the terminal vertex) is left to the consumer, exactly as
// for a freshly built graph.
//
//	g, err := io.ImportJSON("output.json")
//
// # Errors
//
// All functions return *errors.Error values: FILE_NOT_FOUND for missing
// inputs, INVALID_FORMAT for undecodable JSON, and the graph or table codes
// for content problems.
package io
