package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/exprgraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file; derived from input or config when empty
	format      string  // expr, dot, svg, pdf or png
	inputFormat string  // auto, json or arcs
	operations  string  // operations file for detailed diagrams
	detailed    bool    // label diagram vertices with operations and values
	scale       float64 // PNG scale factor
	refresh     bool    // ignore cached results
}

// renderCommand creates the render command.
//
// The default renders the serialized graph at paths.graph as nested
// expression text into paths.output, the way the original converter did.
// Diagram formats go through Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:      pipeline.FormatExpr,
		inputFormat: pipeline.InputAuto,
		scale:       pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [graph]",
		Short: "Render a graph as expression text or a node-link diagram",
		Long: `Render reads a serialized graph (or an arc list) and writes the terminal
vertex as nested call text such as "f(g(x()), y())", or draws the graph as a
node-link diagram with arcs labeled by argument index.

With --detailed and --ops, diagram vertices also show their operation and
computed value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			if err := pipeline.ValidateInputFormat(opts.inputFormat); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), inputArg(args, c.Config.Paths.Graph), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, "-" for stdout`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: expr, dot, svg, pdf, png")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", opts.inputFormat, "input format: auto, json, arcs")
	cmd.Flags().StringVar(&opts.operations, "ops", "", "operations file (detailed diagrams)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show operations and values on diagram vertices")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	output := opts.output
	if output == "" {
		output = c.Config.Paths.Output
		if opts.format != pipeline.FormatExpr {
			output = diagramPath("", input, opts.format)
		}
	}
	quiet := output == "-"

	popts := pipeline.Options{
		Input:       input,
		InputFormat: opts.inputFormat,
		Format:      opts.format,
		Detailed:    opts.detailed,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		Logger:      logger,
	}
	if opts.detailed {
		popts.Operations = opts.operations
	}

	prog := newProgress(logger)
	var spinner *Spinner
	if !quiet && popts.IsDiagram() {
		spinner = newSpinnerWithContext(ctx, "Rendering "+opts.format+" diagram...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if err := writeOutput(output, result.Rendered); err != nil {
		return err
	}
	if quiet {
		return nil
	}

	prog.done("Rendered " + result.Terminal)
	printSuccess("Rendered %s", opts.format)
	printStats(result.Stats.VertexCount, result.Stats.ArcCount, result.Stats.RenderTime, result.CacheInfo.RenderHit)
	if opts.format == pipeline.FormatExpr && len(result.Rendered) <= 120 {
		printDetail("%s", result.Rendered)
	}
	printFile(output)
	return nil
}
