package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/exprgraph/pkg/dag"
	"github.com/matzehuels/exprgraph/pkg/ops"
)

func testGraph(t *testing.T) *dag.Graph {
	t.Helper()
	g, err := dag.ParseRecords([]string{"(y, f, 1), (x, f, 0)"})
	if err != nil {
		t.Fatalf("ParseRecords() error: %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=BT;",
		`"y" [label="y"];`,
		`"x" -> "f" [label="0"];`,
		`"y" -> "f" [label="1"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Index(dot, `"x" -> "f"`) > strings.Index(dot, `"y" -> "f"`) {
		t.Error("arcs not emitted in index order")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	table := ops.FromMap(map[string]string{"x": "2", "f": "+"})
	dot := ToDOT(testGraph(t), Options{
		Ops:      table,
		Values:   map[string]float64{"f": 5},
		Terminal: "f",
	})

	if !strings.Contains(dot, `"f" [label="f\n+\n= 5.0", penwidth=3];`) {
		t.Errorf("terminal label wrong:\n%s", dot)
	}
	if !strings.Contains(dot, `"y" [label="y", style="rounded,filled,dashed"`) {
		t.Errorf("vertex without operation not dashed:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.40 200.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.40 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering skipped in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() output is not SVG: %.80s", svg)
	}
}
