// Package eval computes the numeric value of an expression graph.
//
// The value of a vertex is derived from its operation table entry and the
// values of its children taken in ascending argument-index order:
//
//   - A leaf (no children) must have a numeric literal entry.
//   - sum and product fold all arguments; exp takes exactly one.
//   - A literal entry on a vertex with children overrides the vertex's value.
//     The children are still evaluated, and a failure among them still fails
//     the vertex, but their values are discarded.
//
// Every vertex is computed at most once per [Evaluator]. A child shared by
// several parents is looked up in the memo instead of being recomputed, so a
// DAG with shared sub-results yields a single consistent value per vertex.
//
// Traversal uses an explicit stack of frames rather than native recursion, so
// graph depth is limited by memory, not by the goroutine stack.
package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
	"github.com/matzehuels/exprgraph/pkg/ops"
)

// Step records one computed vertex.
type Step struct {
	Vertex   string        // Vertex label
	Op       ops.Operation // Operation applied
	Args     []float64     // Child values in argument order (nil for leaves)
	Value    float64       // Resulting value
	Override bool          // True when a literal replaced a vertex with children
}

// Result is the outcome of a full evaluation.
type Result struct {
	Terminal string  // The evaluated terminal vertex
	Value    float64 // Its value
	Trace    []Step  // Every computed vertex in completion order
	Depth    int     // Longest leaf-to-terminal path
}

// Evaluator evaluates vertices of one graph against one operation table.
// The zero value is not usable - use New.
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	g     *dag.Graph
	table ops.Table
	memo  map[string]float64
	trace []Step
}

// New creates an Evaluator for g and table. Neither is modified.
func New(g *dag.Graph, table ops.Table) *Evaluator {
	return &Evaluator{
		g:     g,
		table: table,
		memo:  make(map[string]float64),
	}
}

// Evaluate validates g and returns the value of its terminal vertex.
func Evaluate(g *dag.Graph, table ops.Table) (float64, error) {
	res, err := New(g, table).Run()
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// Run validates the graph (acyclicity and a unique terminal) and evaluates
// the terminal vertex.
func (e *Evaluator) Run() (*Result, error) {
	order, err := dag.TopoSort(e.g)
	if err != nil {
		return nil, err
	}
	terminal, err := dag.Terminal(e.g)
	if err != nil {
		return nil, err
	}
	v, err := e.Value(terminal)
	if err != nil {
		return nil, err
	}
	return &Result{
		Terminal: terminal,
		Value:    v,
		Trace:    e.Trace(),
		Depth:    dag.Depths(e.g, order)[terminal],
	}, nil
}

// Trace returns the steps computed so far, in completion order.
func (e *Evaluator) Trace() []Step {
	out := make([]Step, len(e.trace))
	copy(out, e.trace)
	return out
}

// Cached returns the memoized value of v, if it has been computed.
func (e *Evaluator) Cached(v string) (float64, bool) {
	x, ok := e.memo[v]
	return x, ok
}

type frame struct {
	vertex string
	next   int // index into ChildArcs of the next child to visit
}

// Value computes the value of vertex v, evaluating and memoizing whatever part
// of its subgraph has not been computed yet.
//
// Errors raised at v itself are returned as-is. When a descendant fails, its
// error is wrapped once as CHILD_EVALUATION_FAILED at the parent that observed
// the failure, and that wrapped error is what reaches the caller.
//
// Value does not require a prior validation pass; a cycle reachable from v is
// reported as CYCLE_DETECTED.
func (e *Evaluator) Value(v string) (float64, error) {
	if x, ok := e.memo[v]; ok {
		return x, nil
	}
	if !e.g.HasVertex(v) {
		return 0, errs.New(errs.ErrCodeMissingOperation, "vertex %q is not in the graph", v).ForVertex(v)
	}

	stack := []frame{{vertex: v}}
	onStack := map[string]bool{v: true}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		kids := e.g.ChildArcs(top.vertex)

		if top.next < len(kids) {
			child := kids[top.next].Child
			top.next++
			if _, done := e.memo[child]; done {
				continue
			}
			if onStack[child] {
				return 0, errs.New(errs.ErrCodeCycleDetected,
					"graph contains a cycle through %s", child).ForVertex(child)
			}
			onStack[child] = true
			stack = append(stack, frame{vertex: child})
			continue
		}

		step, err := e.apply(top.vertex)
		if err != nil {
			if len(stack) > 1 {
				parent := stack[len(stack)-2].vertex
				return 0, errs.Wrap(errs.ErrCodeChildEvaluationFailed, err,
					"failed to compute value for vertex '%s'", parent).ForVertex(parent)
			}
			return 0, err
		}
		e.memo[top.vertex] = step.Value
		e.trace = append(e.trace, step)
		delete(onStack, top.vertex)
		stack = stack[:len(stack)-1]
	}
	return e.memo[v], nil
}

// apply computes v from its table entry; all of v's children are memoized.
func (e *Evaluator) apply(v string) (Step, error) {
	op, ok := e.table.Lookup(v)
	if !ok {
		return Step{}, errs.New(errs.ErrCodeMissingOperation,
			"operation for vertex '%s' not found", v).ForVertex(v)
	}

	kids := e.g.ChildArcs(v)
	if len(kids) == 0 {
		if op.Kind != ops.KindLiteral {
			return Step{}, errs.New(errs.ErrCodeInvalidLeafOperation,
				"invalid operation '%s' for leaf vertex '%s'", op.Raw, v).ForVertex(v).WithOperator(op.Raw)
		}
		return Step{Vertex: v, Op: op, Value: op.Value}, nil
	}

	args := make([]float64, len(kids))
	for i, a := range kids {
		args[i] = e.memo[a.Child]
	}
	step := Step{Vertex: v, Op: op, Args: args}

	switch op.Kind {
	case ops.KindSum:
		for _, x := range args {
			step.Value += x
		}
	case ops.KindProduct:
		step.Value = 1
		for _, x := range args {
			step.Value *= x
		}
	case ops.KindExp:
		if len(args) != 1 {
			return Step{}, errs.New(errs.ErrCodeArityMismatch,
				"operation 'exp' expects exactly one input for vertex '%s', got %d", v, len(args)).ForVertex(v).WithOperator("exp")
		}
		step.Value = math.Exp(args[0])
	case ops.KindLiteral:
		step.Value = op.Value
		step.Override = true
	default:
		return Step{}, errs.New(errs.ErrCodeInvalidOperation,
			"invalid operation '%s' for vertex '%s'", op.Raw, v).ForVertex(v).WithOperator(op.Raw)
	}
	return step, nil
}

// FormatValue renders v the way results are written to output files: the
// shortest decimal that round-trips, always with a fractional part ("5.0"),
// switching to exponent form below 1e-4 and from 1e16 on.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
