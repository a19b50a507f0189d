package dag

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

// recordSep splits "(a, b, 0), (c, d, 1)" between consecutive triples.
var recordSep = regexp.MustCompile(`\)\s*,\s*\(`)

// ParseLine parses one logical line of the arc list format into arcs.
//
// A line holds one or more triples shaped as "(child, parent, index)",
// joined by commas:
//
//	(x, f, 0), (y, f, 1)
//
// Fields are trimmed and the index must be a base-10 integer. Returns a
// MALFORMED_RECORD error (without line number) if parentheses or commas are
// missing, a field is empty, or the index is not an integer.
func ParseLine(line string) ([]Arc, error) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, malformed(line, "record must be enclosed in parentheses")
	}
	s = s[1 : len(s)-1]

	var arcs []Arc
	for _, rec := range recordSep.Split(s, -1) {
		a, err := parseTriple(rec)
		if err != nil {
			return nil, malformed(line, "%s", errs.UserMessage(err))
		}
		arcs = append(arcs, a)
	}
	return arcs, nil
}

func parseTriple(rec string) (Arc, error) {
	fields := strings.Split(rec, ",")
	if len(fields) != 3 {
		return Arc{}, errs.New(errs.ErrCodeMalformedRecord, "expected (child, parent, index), got (%s)", rec)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	child, parent, rawIndex := fields[0], fields[1], fields[2]

	for _, label := range []string{child, parent} {
		if err := errs.ValidateLabel(label); err != nil {
			return Arc{}, errs.New(errs.ErrCodeMalformedRecord, "%s", errs.UserMessage(err))
		}
	}
	idx, err := strconv.Atoi(rawIndex)
	if err != nil {
		return Arc{}, errs.New(errs.ErrCodeMalformedRecord, "argument index %q is not an integer", rawIndex)
	}
	return Arc{Child: child, Parent: parent, Index: idx}, nil
}

func malformed(line, format string, args ...any) *errs.Error {
	e := errs.New(errs.ErrCodeMalformedRecord, format, args...)
	e.Message += ": '" + strings.TrimSpace(line) + "'"
	return e
}

// ParseRecords builds a Graph from the lines of an arc list.
//
// Blank lines are skipped but still counted, so the 1-based line numbers on
// returned errors match the source. Arcs are added in input order and the
// duplicate checks of [Graph.AddArc] run as each arc is ingested; the first
// violation stops parsing.
//
// Returns MALFORMED_RECORD, DUPLICATE_ARC or DUPLICATE_ARGUMENT_INDEX errors,
// each carrying the offending line number.
func ParseRecords(lines []string) (*Graph, error) {
	g := New()
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		arcs, err := ParseLine(line)
		if err != nil {
			return nil, atLine(err, i+1)
		}
		for _, a := range arcs {
			if err := g.AddArc(a); err != nil {
				return nil, atLine(err, i+1)
			}
		}
	}
	return g, nil
}

func atLine(err error, line int) error {
	var e *errs.Error
	if errors.As(err, &e) {
		e.AtLine(line)
	}
	return err
}
