package expr

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

func mustParse(t *testing.T, lines ...string) *dag.Graph {
	t.Helper()
	g, err := dag.ParseRecords(lines)
	if err != nil {
		t.Fatalf("ParseRecords() error: %v", err)
	}
	return g
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		arcs []string
		want string
	}{
		{"single arc", []string{"(x, f, 0)"}, "f(x())"},
		{"two arguments", []string{"(x, f, 0), (y, f, 1)"}, "f(x(), y())"},
		{"nested", []string{"(x, f, 0), (g, f, 1)", "(y, g, 0), (z, g, 1)"}, "f(x(), g(y(), z()))"},
		{"sparse indices", []string{"(b, f, 7), (a, f, 3)"}, "f(a(), b())"},
		{"negative index first", []string{"(b, f, 0), (a, f, -2)"}, "f(a(), b())"},
		{"shared child repeats", []string{"(x, a, 0), (x, b, 0)", "(a, f, 0), (b, f, 1)"}, "f(a(x()), b(x()))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(mustParse(t, tt.arcs...))
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_Invalid(t *testing.T) {
	tests := []struct {
		name string
		arcs []string
		code errs.Code
	}{
		{"cycle", []string{"(a, b, 0), (b, a, 0)"}, errs.ErrCodeCycleDetected},
		{"two terminals", []string{"(x, f, 0), (y, g, 0)"}, errs.ErrCodeAmbiguousTerminal},
		{"empty", nil, errs.ErrCodeAmbiguousTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(mustParse(t, tt.arcs...))
			if !errs.Is(err, tt.code) {
				t.Errorf("Render() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestRenderVertex_Subtree(t *testing.T) {
	g := mustParse(t, "(x, f, 0), (g, f, 1)", "(y, g, 0)")
	if got := RenderVertex(g, "g"); got != "g(y())" {
		t.Errorf("RenderVertex(g) = %q", got)
	}
	if got := RenderVertex(g, "y"); got != "y()" {
		t.Errorf("RenderVertex(y) = %q", got)
	}
}

func TestRender_DeepChain(t *testing.T) {
	const depth = 50_000
	lines := make([]string, depth)
	for i := 1; i <= depth; i++ {
		lines[i-1] = fmt.Sprintf("(v%d, v%d, 0)", i-1, i)
	}

	got, err := Render(mustParse(t, lines...))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.HasPrefix(got, fmt.Sprintf("v%d(v%d(", depth, depth-1)) {
		t.Errorf("Render() prefix = %q", got[:32])
	}
	if n := strings.Count(got, ")"); n != depth+1 {
		t.Errorf("closing parens = %d, want %d", n, depth+1)
	}
}

func ExampleRender() {
	g, _ := dag.ParseRecords([]string{
		"(x, f, 0), (g, f, 1)",
		"(y, g, 0), (z, g, 1)",
	})
	s, _ := Render(g)
	fmt.Println(s)
	// Output: f(x(), g(y(), z()))
}
