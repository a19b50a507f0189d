package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/exprgraph/pkg/eval"
	"github.com/matzehuels/exprgraph/pkg/pipeline"
)

// evalOpts holds the command-line flags for the eval command.
type evalOpts struct {
	output      string
	operations  string
	inputFormat string
	trace       bool
	refresh     bool
}

// evalCommand creates the eval command.
func (c *CLI) evalCommand() *cobra.Command {
	opts := evalOpts{inputFormat: pipeline.InputAuto}

	cmd := &cobra.Command{
		Use:   "eval [arcs]",
		Short: "Compute the value of the terminal vertex",
		Long: `Eval builds the graph, looks up each vertex in the operations file and
computes the terminal vertex's value. Leaves take numeric literals; inner
vertices take +/sum, */product or exp over their arguments in index order.

The value is written as a decimal ("5.0") to paths.output (output.txt).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateInputFormat(opts.inputFormat); err != nil {
				return err
			}
			return c.runEval(cmd.Context(), inputArg(args, c.Config.Paths.Arcs), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, "-" for stdout (default paths.output)`)
	cmd.Flags().StringVar(&opts.operations, "ops", "", "operations file (default paths.operations)")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", opts.inputFormat, "input format: auto, json, arcs")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print every evaluated vertex")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runEval(ctx context.Context, input string, opts *evalOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	output := firstNonEmpty(opts.output, c.Config.Paths.Output)
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:       input,
		InputFormat: opts.inputFormat,
		Operations:  firstNonEmpty(opts.operations, c.Config.Paths.Operations),
		Trace:       opts.trace,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	value := eval.FormatValue(result.Eval.Value)
	if err := writeOutput(output, []byte(value)); err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	prog.done("Evaluated " + result.Terminal)
	printSuccess("%s = %s", result.Terminal, StyleNumber.Render(value))
	printStats(result.Stats.VertexCount, result.Stats.ArcCount, result.Stats.EvalTime, result.CacheInfo.EvalHit)
	if opts.trace {
		printNewline()
		fmt.Println(traceTable(result.Eval.Trace))
	}
	printFile(output)
	return nil
}
