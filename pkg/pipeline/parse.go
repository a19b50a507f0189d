package pipeline

import (
	"bytes"

	"github.com/matzehuels/exprgraph/pkg/dag"
	graphio "github.com/matzehuels/exprgraph/pkg/io"
)

// Parse builds a graph from raw input bytes in the given input format.
// InputAuto treats data starting with '{' as a serialized graph.
func Parse(data []byte, format string) (*dag.Graph, error) {
	if format == InputAuto {
		format = InputArcs
		if trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
			format = InputJSON
		}
	}
	if format == InputJSON {
		return graphio.ReadJSON(bytes.NewReader(data))
	}
	return graphio.ReadArcs(bytes.NewReader(data))
}

// ParseFile builds the graph named by opts.Input without caching.
func ParseFile(opts Options) (*dag.Graph, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	if opts.ResolveInputFormat() == InputJSON {
		return graphio.ImportJSON(opts.Input)
	}
	return graphio.ImportArcs(opts.Input)
}
