package pipeline

import (
	"github.com/matzehuels/exprgraph/pkg/dag"
	"github.com/matzehuels/exprgraph/pkg/render/nodelink"
)

// GenerateLayout returns the Graphviz DOT description of g for node-link
// output. Detailed layouts label each vertex with its operation from
// opts.Table and its value from opts.Values.
func GenerateLayout(g *dag.Graph, opts Options) (string, error) {
	terminal, err := dag.Validate(g)
	if err != nil {
		return "", err
	}
	dotOpts := nodelink.Options{Terminal: terminal}
	if opts.Detailed {
		dotOpts.Ops = opts.Table
		dotOpts.Values = opts.Values
	}
	return nodelink.ToDOT(g, dotOpts), nil
}
