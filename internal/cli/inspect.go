package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/exprgraph/pkg/dag"
	"github.com/matzehuels/exprgraph/pkg/eval"
	"github.com/matzehuels/exprgraph/pkg/pipeline"
	"github.com/matzehuels/exprgraph/pkg/render/expr"
)

// inspectCommand creates the inspect command, an interactive browser over
// every vertex with its operation, value and sub-expression.
func (c *CLI) inspectCommand() *cobra.Command {
	var operations, inputFormat string

	cmd := &cobra.Command{
		Use:   "inspect [arcs]",
		Short: "Browse vertices, operations and values interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateInputFormat(inputFormat); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), inputArg(args, c.Config.Paths.Arcs), inputFormat, operations)
		},
	}

	cmd.Flags().StringVar(&operations, "ops", "", "operations file; values are shown when given")
	cmd.Flags().StringVar(&inputFormat, "input-format", pipeline.InputAuto, "input format: auto, json, arcs")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, inputFormat, operations string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:       input,
		InputFormat: inputFormat,
		Operations:  operations,
		Trace:       true,
		Logger:      loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	rows, err := inspectRows(result.Graph, result.Eval)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(NewInspectModel(input, rows), tea.WithContext(ctx)).Run()
	return err
}

// inspectRows lists the vertices of g in topological order, leaves first.
// Operations and values come from the evaluation trace when res is non-nil.
func inspectRows(g *dag.Graph, res *eval.Result) ([]VertexRow, error) {
	order, err := dag.TopoSort(g)
	if err != nil {
		return nil, err
	}
	terminal, err := dag.Terminal(g)
	if err != nil {
		return nil, err
	}
	depths := dag.Depths(g, order)

	steps := map[string]eval.Step{}
	if res != nil {
		for _, s := range res.Trace {
			steps[s.Vertex] = s
		}
	}

	rows := make([]VertexRow, len(order))
	for i, v := range order {
		row := VertexRow{
			Vertex:   v,
			Arity:    g.Arity(v),
			Depth:    depths[v],
			Expr:     expr.RenderVertex(g, v),
			Terminal: v == terminal,
		}
		if s, ok := steps[v]; ok {
			row.Op = s.Op.Raw
			row.Value = eval.FormatValue(s.Value)
		}
		rows[i] = row
	}
	return rows, nil
}
