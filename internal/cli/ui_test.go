package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
	"github.com/matzehuels/exprgraph/pkg/eval"
	"github.com/matzehuels/exprgraph/pkg/ops"
)

func TestFormatStats(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		cached  bool
		want    []string
	}{
		{"fresh", 0, false, []string{"4 vertices", "3 arcs", iconFresh}},
		{"cached with time", 1500 * time.Microsecond, true, []string{"1.5ms", iconCached}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatStats(4, 3, tt.elapsed, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatStats() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestTraceTable(t *testing.T) {
	g, err := dag.ParseRecords([]string{"(x, f, 0), (y, f, 1)"})
	if err != nil {
		t.Fatal(err)
	}
	res, err := eval.New(g, ops.FromMap(map[string]string{"x": "2", "y": "3", "f": "7"})).Run()
	if err != nil {
		t.Fatal(err)
	}

	out := traceTable(res.Trace)
	for _, want := range []string{"Vertex", "7 (override)", "2.0, 3.0", "7.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("traceTable() missing %q\n%s", want, out)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	err := errs.New(errs.ErrCodeCycleDetected, "graph contains a cycle through a")
	PrintError(&buf, err)

	out := buf.String()
	for _, want := range []string{iconError, "cycle", "CYCLE_DETECTED"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintError() = %q, missing %q", out, want)
		}
	}
}
