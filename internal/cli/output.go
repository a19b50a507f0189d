package cli

import (
	"path/filepath"
	"strings"

	graphio "github.com/matzehuels/exprgraph/pkg/io"
	"github.com/matzehuels/exprgraph/pkg/pipeline"
)

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return graphio.WriteText(path, string(data))
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// diagramPath returns the output path for a diagram in format. An explicit
// output is used as is; otherwise the input's extension is replaced.
func diagramPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return basePath("", input) + "." + format
}
