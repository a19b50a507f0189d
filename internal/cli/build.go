package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/exprgraph/pkg/pipeline"
)

// buildCommand creates the build command, which converts an arc list into a
// serialized graph.
func (c *CLI) buildCommand() *cobra.Command {
	var output string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "build [arcs]",
		Short: "Convert an arc list into a serialized graph (JSON)",
		Long: `Build reads an arc list, one or more "(child, parent, index)" triples per
line, checks that no arc or argument index repeats, and writes the graph as
JSON with vertices in first-seen order and arcs sorted by argument index.

The input defaults to paths.arcs from the config file (input.txt) and the
output to paths.graph (output.json).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args, c.Config.Paths.Arcs)
			return c.runBuild(cmd.Context(), input, firstNonEmpty(output, c.Config.Paths.Graph), refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default paths.graph)`)
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, input, output string, refresh bool) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	logger.Debugf("Building graph from %s", input)

	g, hit, err := runner.BuildWithCacheInfo(ctx, pipeline.Options{
		Input:       input,
		InputFormat: pipeline.InputArcs,
		Refresh:     refresh,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	data, err := pipeline.MarshalGraph(g)
	if err != nil {
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	prog.done("Built graph")
	printSuccess("Wrote serialized graph")
	printStats(g.VertexCount(), g.ArcCount(), 0, hit)
	printFile(output)
	printNextStep("Render it", appName+" render "+output)
	return nil
}
