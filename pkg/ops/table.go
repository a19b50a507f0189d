package ops

import (
	"strings"

	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

// ParseTable parses the lines of an operations file into a Table.
//
// The first and last lines are framing (the file is written as a wrapped
// list) and are skipped without inspection. Every interior line must read
// "key: value"; the split happens at the first colon and both sides are
// trimmed, so values may themselves contain colons. A trailing comma and one
// pair of surrounding quotes are dropped from keys and values. Blank interior
// lines are ignored. A later entry for the same key replaces an earlier one.
//
// Returns a MALFORMED_OPERATION_RECORD error, carrying the 1-based line
// number, for a non-empty interior line without a colon or with an empty key.
func ParseTable(lines []string) (Table, error) {
	t := make(Table)
	if len(lines) <= 2 {
		return t, nil
	}
	for i := 1; i < len(lines)-1; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errs.New(errs.ErrCodeMalformedOperationRecord,
				"invalid line format: %s", line).AtLine(i + 1)
		}
		t[unquote(key)] = ParseOperation(unquote(strings.TrimSuffix(strings.TrimSpace(value), ",")))
	}
	return t, nil
}

// unquote strips one pair of matching surrounding quotes, so entries written
// as "x": "2", inside a JSON-style wrapper parse like x: 2.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
