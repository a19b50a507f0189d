package eval

import (
	"errors"
	"fmt"
	"math"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
	"github.com/matzehuels/exprgraph/pkg/ops"
)

func mustParse(t *testing.T, lines ...string) *dag.Graph {
	t.Helper()
	g, err := dag.ParseRecords(lines)
	if err != nil {
		t.Fatalf("ParseRecords() error: %v", err)
	}
	return g
}

// naive recomputes shared children on every visit; results must match the
// memoized evaluator on any valid graph.
func naive(g *dag.Graph, table ops.Table, v string) float64 {
	op := table[v]
	kids := g.Children(v)
	if len(kids) == 0 {
		return op.Value
	}
	var args []float64
	for _, c := range kids {
		args = append(args, naive(g, table, c))
	}
	switch op.Kind {
	case ops.KindSum:
		s := 0.0
		for _, a := range args {
			s += a
		}
		return s
	case ops.KindProduct:
		p := 1.0
		for _, a := range args {
			p *= a
		}
		return p
	case ops.KindExp:
		return math.Exp(args[0])
	default:
		return op.Value
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		arcs  []string
		table map[string]string
		want  float64
	}{
		{
			name:  "sum",
			arcs:  []string{"(x, f, 0), (y, f, 1)"},
			table: map[string]string{"x": "2", "y": "3", "f": "+"},
			want:  5,
		},
		{
			name:  "exp",
			arcs:  []string{"(x, f, 0)"},
			table: map[string]string{"x": "1", "f": "exp"},
			want:  math.E,
		},
		{
			name:  "nested",
			arcs:  []string{"(x, f, 0), (g, f, 1)", "(y, g, 0), (z, g, 1)"},
			table: map[string]string{"x": "2", "y": "3", "z": "4", "g": "+", "f": "*"},
			want:  14,
		},
		{
			name:  "word operators",
			arcs:  []string{"(x, f, 0), (y, f, 1)"},
			table: map[string]string{"x": "2", "y": "5", "f": "product"},
			want:  10,
		},
		{
			name:  "single argument sum",
			arcs:  []string{"(x, f, 0)"},
			table: map[string]string{"x": "-1.5", "f": "sum"},
			want:  -1.5,
		},
		{
			name:  "shared child",
			arcs:  []string{"(x, a, 0), (x, b, 0)", "(a, f, 0), (b, f, 1)"},
			table: map[string]string{"x": "2", "a": "exp", "b": "+", "f": "*"},
			want:  math.Exp(2) * 2,
		},
		{
			name:  "literal override ignores children",
			arcs:  []string{"(x, g, 0), (g, f, 0)"},
			table: map[string]string{"x": "1", "g": "7", "f": "+"},
			want:  7,
		},
		{
			name:  "argument order follows index",
			arcs:  []string{"(b, f, 1), (a, f, 0)"},
			table: map[string]string{"a": "2", "b": "3", "f": "*"},
			want:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.arcs...)
			got, err := Evaluate(g, ops.FromMap(tt.table))
			if err != nil {
				t.Fatalf("Evaluate() error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_MatchesNaive(t *testing.T) {
	// Layered graph where every vertex feeds both vertices of the next layer.
	var lines []string
	table := ops.Table{"l0a": ops.Literal(0.5), "l0b": ops.Literal(1.25)}
	for i := 1; i <= 8; i++ {
		a, b := fmt.Sprintf("l%da", i), fmt.Sprintf("l%db", i)
		pa, pb := fmt.Sprintf("l%da", i-1), fmt.Sprintf("l%db", i-1)
		lines = append(lines, fmt.Sprintf("(%s, %s, 0), (%s, %s, 1), (%s, %s, 0), (%s, %s, 1)", pa, a, pb, a, pa, b, pb, b))
		table[a] = ops.ParseOperation("+")
		table[b] = ops.ParseOperation("*")
	}
	lines = append(lines, "(l8a, top, 0), (l8b, top, 1)")
	table["top"] = ops.ParseOperation("+")

	g := mustParse(t, lines...)
	res, err := New(g, table).Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if want := naive(g, table, "top"); res.Value != want {
		t.Errorf("Run().Value = %v, naive = %v", res.Value, want)
	}
	if len(res.Trace) != g.VertexCount() {
		t.Errorf("len(Trace) = %d, want one step per vertex (%d)", len(res.Trace), g.VertexCount())
	}
	if res.Depth != 9 {
		t.Errorf("Depth = %d, want 9", res.Depth)
	}
}

func TestRun_Trace(t *testing.T) {
	g := mustParse(t, "(x, g, 0), (g, f, 0), (y, f, 1)")
	table := ops.FromMap(map[string]string{"x": "1", "y": "2", "g": "5", "f": "+"})

	res, err := New(g, table).Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Terminal != "f" || res.Value != 7 {
		t.Errorf("Run() = %s=%v, want f=7", res.Terminal, res.Value)
	}

	var order []string
	var overridden []string
	for _, s := range res.Trace {
		order = append(order, s.Vertex)
		if s.Override {
			overridden = append(overridden, s.Vertex)
		}
	}
	if diff := gocmp.Diff([]string{"x", "g", "y", "f"}, order); diff != "" {
		t.Errorf("trace order mismatch (-want +got):\n%s", diff)
	}
	if diff := gocmp.Diff([]string{"g"}, overridden); diff != "" {
		t.Errorf("overrides mismatch (-want +got):\n%s", diff)
	}
	if diff := gocmp.Diff([]float64{5, 2}, res.Trace[3].Args); diff != "" {
		t.Errorf("f args mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		arcs     []string
		table    map[string]string
		code     errs.Code
		root     errs.Code
		vertex   string
		operator string
	}{
		{
			name:   "missing leaf operation",
			arcs:   []string{"(x, f, 0), (y, f, 1)"},
			table:  map[string]string{"x": "1", "f": "+"},
			code:   errs.ErrCodeChildEvaluationFailed,
			root:   errs.ErrCodeMissingOperation,
			vertex: "y",
		},
		{
			name:   "missing terminal operation",
			arcs:   []string{"(x, f, 0)"},
			table:  map[string]string{"x": "1"},
			code:   errs.ErrCodeMissingOperation,
			root:   errs.ErrCodeMissingOperation,
			vertex: "f",
		},
		{
			name:     "operator on leaf",
			arcs:     []string{"(x, f, 0)"},
			table:    map[string]string{"x": "+", "f": "exp"},
			code:     errs.ErrCodeChildEvaluationFailed,
			root:     errs.ErrCodeInvalidLeafOperation,
			vertex:   "x",
			operator: "+",
		},
		{
			name:     "unparseable leaf",
			arcs:     []string{"(x, f, 0)"},
			table:    map[string]string{"x": "two", "f": "exp"},
			code:     errs.ErrCodeChildEvaluationFailed,
			root:     errs.ErrCodeInvalidLeafOperation,
			vertex:   "x",
			operator: "two",
		},
		{
			name:     "unknown operator",
			arcs:     []string{"(x, f, 0)"},
			table:    map[string]string{"x": "1", "f": "max"},
			code:     errs.ErrCodeInvalidOperation,
			root:     errs.ErrCodeInvalidOperation,
			vertex:   "f",
			operator: "max",
		},
		{
			name:     "exp with two arguments",
			arcs:     []string{"(x, f, 0), (y, f, 1)"},
			table:    map[string]string{"x": "1", "y": "2", "f": "exp"},
			code:     errs.ErrCodeArityMismatch,
			root:     errs.ErrCodeArityMismatch,
			vertex:   "f",
			operator: "exp",
		},
		{
			name:   "cycle",
			arcs:   []string{"(a, b, 0), (b, a, 0)"},
			table:  map[string]string{"a": "+", "b": "+"},
			code:   errs.ErrCodeCycleDetected,
			root:   errs.ErrCodeCycleDetected,
			vertex: "",
		},
		{
			name:  "two terminals",
			arcs:  []string{"(x, f, 0), (y, g, 0)"},
			table: map[string]string{"x": "1", "y": "1", "f": "exp", "g": "exp"},
			code:  errs.ErrCodeAmbiguousTerminal,
			root:  errs.ErrCodeAmbiguousTerminal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.arcs...)
			_, err := Evaluate(g, ops.FromMap(tt.table))
			if !errs.Is(err, tt.code) {
				t.Fatalf("Evaluate() error = %v, want code %v", err, tt.code)
			}
			root := errs.Root(err)
			if root.Code != tt.root {
				t.Errorf("root code = %v, want %v", root.Code, tt.root)
			}
			if tt.vertex != "" && root.Vertex != tt.vertex {
				t.Errorf("root vertex = %q, want %q", root.Vertex, tt.vertex)
			}
			if root.Operator != tt.operator {
				t.Errorf("root operator = %q, want %q", root.Operator, tt.operator)
			}
		})
	}
}

func TestEvaluate_ChildFailureWrappedOnce(t *testing.T) {
	// h(g(f(x))) with x missing: only f, the first vertex to see the
	// failure, wraps it. Ancestors pass the wrapped error through.
	g := mustParse(t, "(x, f, 0), (f, g, 0), (g, h, 0)")
	table := ops.FromMap(map[string]string{"f": "exp", "g": "exp", "h": "exp"})

	_, err := Evaluate(g, table)
	var outer *errs.Error
	if !errors.As(err, &outer) {
		t.Fatalf("Evaluate() error = %v, want *errors.Error", err)
	}
	if outer.Code != errs.ErrCodeChildEvaluationFailed || outer.Vertex != "f" {
		t.Errorf("outer = %s at %q, want CHILD_EVALUATION_FAILED at f", outer.Code, outer.Vertex)
	}
	inner, ok := outer.Cause.(*errs.Error)
	if !ok || inner.Code != errs.ErrCodeMissingOperation {
		t.Errorf("cause = %v, want MISSING_OPERATION", outer.Cause)
	}
}

func TestEvaluator_Value(t *testing.T) {
	g := mustParse(t, "(x, f, 0), (g, f, 1)", "(y, g, 0), (z, g, 1)")
	table := ops.FromMap(map[string]string{"x": "2", "y": "3", "z": "4", "g": "+", "f": "*"})
	e := New(g, table)

	v, err := e.Value("g")
	if err != nil || v != 7 {
		t.Fatalf("Value(g) = %v, %v, want 7", v, err)
	}
	if _, ok := e.Cached("x"); ok {
		t.Error("x cached before being needed")
	}
	if got, ok := e.Cached("y"); !ok || got != 3 {
		t.Errorf("Cached(y) = %v, %v, want 3, true", got, ok)
	}

	v, err = e.Value("f")
	if err != nil || v != 14 {
		t.Fatalf("Value(f) = %v, %v, want 14", v, err)
	}
	// g, y and z were reused, so only x and f were added.
	if n := len(e.Trace()); n != 5 {
		t.Errorf("len(Trace) = %d, want 5", n)
	}

	if _, err := e.Value("nope"); !errs.Is(err, errs.ErrCodeMissingOperation) {
		t.Errorf("Value(nope) error = %v, want MISSING_OPERATION", err)
	}
}

func TestEvaluate_DeepChain(t *testing.T) {
	const depth = 100_000
	lines := make([]string, depth)
	table := make(ops.Table, depth+1)
	table["v0"] = ops.Literal(1)
	for i := 1; i <= depth; i++ {
		lines[i-1] = fmt.Sprintf("(v%d, v%d, 0)", i-1, i)
		table[fmt.Sprintf("v%d", i)] = ops.ParseOperation("+")
	}

	got, err := Evaluate(mustParse(t, lines...), table)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if got != 1 {
		t.Errorf("Evaluate() = %v, want 1", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5.0"},
		{14, "14.0"},
		{-3, "-3.0"},
		{0, "0.0"},
		{0.1, "0.1"},
		{math.E, "2.718281828459045"},
		{1e16, "1e+16"},
		{1.5e-5, "1.5e-05"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
