package dag

import (
	"testing"

	gocmp "github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []Arc
		wantErr bool
	}{
		{"single", "(x, f, 0)", []Arc{{"x", "f", 0}}, false},
		{"padded", "  ( x ,f,  2 )  ", []Arc{{"x", "f", 2}}, false},
		{"multiple", "(x, f, 0), (y, f, 1)", []Arc{{"x", "f", 0}, {"y", "f", 1}}, false},
		{"tight join", "(x, f, 0),(y, f, 1)", []Arc{{"x", "f", 0}, {"y", "f", 1}}, false},
		{"negative index", "(x, f, -1)", []Arc{{"x", "f", -1}}, false},
		{"unicode labels", "(икс, эф, 0)", []Arc{{"икс", "эф", 0}}, false},

		{"no parentheses", "x, f, 0", nil, true},
		{"missing close", "(x, f, 0", nil, true},
		{"two fields", "(x, f)", nil, true},
		{"four fields", "(x, f, 0, 1)", nil, true},
		{"empty child", "(, f, 0)", nil, true},
		{"empty parent", "(x, , 0)", nil, true},
		{"non-integer index", "(x, f, one)", nil, true},
		{"float index", "(x, f, 1.5)", nil, true},
		{"bad second record", "(x, f, 0), (y, f)", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLine(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if err != nil {
				if !errs.Is(err, errs.ErrCodeMalformedRecord) {
					t.Errorf("ParseLine(%q) code = %v, want %v", tt.line, errs.GetCode(err), errs.ErrCodeMalformedRecord)
				}
				return
			}
			if diff := gocmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseRecords(t *testing.T) {
	g, err := ParseRecords([]string{
		"(x, f, 0), (g, f, 1)",
		"",
		"(y, g, 0)",
		"(z, g, 1)",
	})
	if err != nil {
		t.Fatalf("ParseRecords() error: %v", err)
	}
	if g.ArcCount() != 4 {
		t.Errorf("ArcCount() = %d, want 4", g.ArcCount())
	}
	if diff := gocmp.Diff([]string{"x", "f", "g", "y", "z"}, g.Vertices()); diff != "" {
		t.Errorf("Vertices() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecords_Errors(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		code     errs.Code
		wantLine int
	}{
		{
			name:     "malformed after blank line",
			lines:    []string{"(x, f, 0)", "", "(y f 1)"},
			code:     errs.ErrCodeMalformedRecord,
			wantLine: 3,
		},
		{
			name:     "duplicate arc across lines",
			lines:    []string{"(x, f, 0)", "(x, f, 1)"},
			code:     errs.ErrCodeDuplicateArc,
			wantLine: 2,
		},
		{
			name:     "duplicate arc on one line",
			lines:    []string{"(x, f, 0), (x, f, 1)"},
			code:     errs.ErrCodeDuplicateArc,
			wantLine: 1,
		},
		{
			name:     "duplicate argument index",
			lines:    []string{"(x, f, 0), (y, f, 0)"},
			code:     errs.ErrCodeDuplicateArgumentIndex,
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecords(tt.lines)
			if !errs.Is(err, tt.code) {
				t.Fatalf("ParseRecords() error = %v, want code %v", err, tt.code)
			}
			if got := errs.Root(err).Line; got != tt.wantLine {
				t.Errorf("error line = %d, want %d", got, tt.wantLine)
			}
		})
	}
}

func TestParseRecords_Empty(t *testing.T) {
	g, err := ParseRecords(nil)
	if err != nil {
		t.Fatalf("ParseRecords(nil) error: %v", err)
	}
	if g.VertexCount() != 0 {
		t.Errorf("VertexCount() = %d, want 0", g.VertexCount())
	}
}
