// Package ops defines the operation table that tells the evaluator what each
// vertex computes.
//
// Every table entry is resolved once, when the table is loaded, into a closed
// [Operation] variant:
//
//   - [KindSum]: "+" or "sum", variadic sum of the arguments
//   - [KindProduct]: "*" or "product", variadic product of the arguments
//   - [KindExp]: "exp", natural exponential of exactly one argument
//   - [KindLiteral]: a floating-point literal such as "2" or "-0.5"
//   - [KindInvalid]: anything else, kept verbatim for error reporting
//
// A literal on a leaf is the leaf's value. A literal on a vertex that has
// children replaces the vertex's value and ignores the children entirely;
// the evaluator treats this as the explicit "literal override" case.
package ops

import (
	"strconv"
	"strings"
)

// Kind discriminates the Operation variants.
type Kind int

const (
	// KindInvalid is an entry that is neither an operator nor a number.
	KindInvalid Kind = iota
	// KindLiteral is a numeric constant.
	KindLiteral
	// KindSum adds all arguments.
	KindSum
	// KindProduct multiplies all arguments.
	KindProduct
	// KindExp raises e to its single argument.
	KindExp
)

// String returns the canonical operator name of k.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindSum:
		return "sum"
	case KindProduct:
		return "product"
	case KindExp:
		return "exp"
	default:
		return "invalid"
	}
}

// Operation is a resolved operation table entry.
type Operation struct {
	Kind  Kind
	Value float64 // set for KindLiteral
	Raw   string  // entry text as it appeared in the table
}

// IsOperator reports whether o combines argument values (sum, product, exp).
func (o Operation) IsOperator() bool {
	return o.Kind == KindSum || o.Kind == KindProduct || o.Kind == KindExp
}

// String returns the raw entry text.
func (o Operation) String() string { return o.Raw }

// operators maps every accepted operator spelling to its kind.
var operators = map[string]Kind{
	"+":       KindSum,
	"sum":     KindSum,
	"*":       KindProduct,
	"product": KindProduct,
	"exp":     KindExp,
}

// ParseOperation resolves a raw table value into an Operation.
// Operator names are matched exactly after trimming surrounding whitespace.
func ParseOperation(raw string) Operation {
	s := strings.TrimSpace(raw)
	if k, ok := operators[s]; ok {
		return Operation{Kind: k, Raw: s}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Operation{Kind: KindLiteral, Value: v, Raw: s}
	}
	return Operation{Kind: KindInvalid, Raw: s}
}

// Literal returns a literal Operation holding v.
func Literal(v float64) Operation {
	return Operation{Kind: KindLiteral, Value: v, Raw: strconv.FormatFloat(v, 'g', -1, 64)}
}

// Table maps vertex labels to their operations. It is read-only once loaded.
type Table map[string]Operation

// Lookup returns the operation registered for v.
func (t Table) Lookup(v string) (Operation, bool) {
	op, ok := t[v]
	return op, ok
}

// FromMap resolves a label -> raw value map into a Table.
func FromMap(m map[string]string) Table {
	t := make(Table, len(m))
	for k, v := range m {
		t[k] = ParseOperation(v)
	}
	return t
}
