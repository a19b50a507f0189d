package pipeline

import (
	"context"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
	graphio "github.com/matzehuels/exprgraph/pkg/io"
	"github.com/matzehuels/exprgraph/pkg/render/expr"
	"github.com/matzehuels/exprgraph/pkg/render/nodelink"
)

// Render produces the output artifact for opts.Format. Expression text is
// the nested form of the terminal vertex; every other format is a node-link
// diagram generated from [GenerateLayout].
//
// A detailed diagram without a preloaded table reads opts.Operations.
func Render(ctx context.Context, g *dag.Graph, opts Options) ([]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.Format == FormatExpr {
		s, err := expr.Render(g)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}

	if opts.Detailed && opts.Table == nil && opts.Operations != "" {
		table, err := graphio.ImportOps(opts.Operations)
		if err != nil {
			return nil, err
		}
		opts.Table = table
	}
	dot, err := GenerateLayout(g, opts)
	if err != nil {
		return nil, err
	}
	return renderDiagram(ctx, dot, opts)
}

func renderDiagram(ctx context.Context, dot string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
	default:
		return nil, ValidateFormat(opts.Format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render %s", opts.Format)
	}
	return data, nil
}
