// Package nodelink renders expression graphs as node-link diagrams.
//
// # Overview
//
// Vertices appear as boxes and every arc is drawn from child to parent,
// labeled with its argument index. Unlike the textual expression, the
// diagram preserves sharing: a child used by several parents appears once.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Ops: when set, labels show each vertex's operation
//   - Values: when set, labels show each vertex's computed value
//   - Terminal: highlights the given vertex
//
// The layout is bottom-to-top (rankdir=BT): leaves sit at the bottom and the
// terminal vertex at the top.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
