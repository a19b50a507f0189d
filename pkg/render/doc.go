// Package render holds the output renderers for expression graphs.
//
// # Overview
//
// Two renderings are provided, each in its own subpackage:
//
//   - [expr]: nested function-call text such as "f(x(), g(y(), z()))"
//   - [nodelink]: Graphviz node-link diagrams (DOT, SVG, PDF, PNG)
//
// This package itself only carries generic format conversion.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [expr]: github.com/matzehuels/exprgraph/pkg/render/expr
// [nodelink]: github.com/matzehuels/exprgraph/pkg/render/nodelink
package render
