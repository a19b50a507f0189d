package ops

import (
	"math"
	"testing"

	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		raw   string
		kind  Kind
		value float64
	}{
		{"+", KindSum, 0},
		{"sum", KindSum, 0},
		{" * ", KindProduct, 0},
		{"product", KindProduct, 0},
		{"exp", KindExp, 0},
		{"2", KindLiteral, 2},
		{"3.5", KindLiteral, 3.5},
		{"-1", KindLiteral, -1},
		{"1e3", KindLiteral, 1000},
		{"EXP", KindInvalid, 0},
		{"plus", KindInvalid, 0},
		{"", KindInvalid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			op := ParseOperation(tt.raw)
			if op.Kind != tt.kind {
				t.Errorf("ParseOperation(%q).Kind = %v, want %v", tt.raw, op.Kind, tt.kind)
			}
			if op.Kind == KindLiteral && op.Value != tt.value {
				t.Errorf("ParseOperation(%q).Value = %v, want %v", tt.raw, op.Value, tt.value)
			}
		})
	}
}

func TestOperation_IsOperator(t *testing.T) {
	for _, raw := range []string{"+", "*", "exp"} {
		if !ParseOperation(raw).IsOperator() {
			t.Errorf("ParseOperation(%q).IsOperator() = false, want true", raw)
		}
	}
	for _, raw := range []string{"1", "nope"} {
		if ParseOperation(raw).IsOperator() {
			t.Errorf("ParseOperation(%q).IsOperator() = true, want false", raw)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindSum:     "sum",
		KindProduct: "product",
		KindExp:     "exp",
		KindLiteral: "literal",
		KindInvalid: "invalid",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestLiteral(t *testing.T) {
	op := Literal(math.E)
	if op.Kind != KindLiteral || op.Value != math.E {
		t.Errorf("Literal(e) = %+v", op)
	}
	if ParseOperation(op.Raw).Value != math.E {
		t.Errorf("Literal(e).Raw = %q does not parse back", op.Raw)
	}
}

func TestParseTable(t *testing.T) {
	table, err := ParseTable([]string{
		"{",
		"x: 2",
		"",
		"  y :3  ",
		`"f": "+",`,
		"g: exp",
		"}",
	})
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}

	if len(table) != 4 {
		t.Errorf("len(table) = %d, want 4", len(table))
	}
	if op, _ := table.Lookup("x"); op.Kind != KindLiteral || op.Value != 2 {
		t.Errorf("x = %+v, want literal 2", op)
	}
	if op, _ := table.Lookup("y"); op.Kind != KindLiteral || op.Value != 3 {
		t.Errorf("y = %+v, want literal 3", op)
	}
	if op, _ := table.Lookup("f"); op.Kind != KindSum {
		t.Errorf("f = %+v, want sum", op)
	}
	if op, _ := table.Lookup("g"); op.Kind != KindExp {
		t.Errorf("g = %+v, want exp", op)
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup(missing) ok = true, want false")
	}
}

func TestParseTable_SkipsFraming(t *testing.T) {
	// Framing lines are never inspected, even when they look like entries
	// or would be malformed.
	table, err := ParseTable([]string{"not a record", "x: 1", "z: 9"})
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}
	if len(table) != 1 {
		t.Errorf("len(table) = %d, want 1", len(table))
	}

	for _, lines := range [][]string{nil, {"["}, {"[", "]"}} {
		table, err := ParseTable(lines)
		if err != nil || len(table) != 0 {
			t.Errorf("ParseTable(%q) = %v, %v, want empty table", lines, table, err)
		}
	}
}

func TestParseTable_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantLine int
	}{
		{"missing separator", []string{"[", "x: 1", "y 2", "]"}, 3},
		{"empty key", []string{"[", ": 1", "]"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable(tt.lines)
			if !errs.Is(err, errs.ErrCodeMalformedOperationRecord) {
				t.Fatalf("ParseTable() error = %v, want %v", err, errs.ErrCodeMalformedOperationRecord)
			}
			if got := errs.Root(err).Line; got != tt.wantLine {
				t.Errorf("error line = %d, want %d", got, tt.wantLine)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	table := FromMap(map[string]string{"x": "2", "f": "*"})
	if op := table["x"]; op.Kind != KindLiteral || op.Value != 2 {
		t.Errorf("x = %+v, want literal 2", op)
	}
	if op := table["f"]; op.Kind != KindProduct {
		t.Errorf("f = %+v, want product", op)
	}
}
