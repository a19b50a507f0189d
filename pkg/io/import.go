package io

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
	"github.com/matzehuels/exprgraph/pkg/ops"
)

// ReadJSON decodes a serialized graph from r.
//
// The input must be a JSON object with "vertices" and "arcs" arrays. Vertices
// are added first, in listed order, then arcs in listed order.
//
// ReadJSON returns an error if:
//   - The JSON is malformed (INVALID_FORMAT)
//   - A label is empty or contains reserved characters (INVALID_LABEL)
//   - An arc references a vertex missing from "vertices" (INVALID_FORMAT)
//   - Two arcs repeat a (from, to) pair or an order under one parent
//     (DUPLICATE_ARC, DUPLICATE_ARGUMENT_INDEX)
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.Graph, error) {
	var data graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}
	if data.Vertices == nil || data.Arcs == nil {
		return nil, errs.New(errs.ErrCodeInvalidFormat, `graph must have "vertices" and "arcs" arrays`)
	}

	g := dag.New()
	for _, v := range data.Vertices {
		if err := errs.ValidateLabel(v); err != nil {
			return nil, err
		}
		g.AddVertex(v)
	}
	for i, a := range data.Arcs {
		for _, v := range []string{a.From, a.To} {
			if !g.HasVertex(v) {
				return nil, errs.New(errs.ErrCodeInvalidFormat,
					"arc %d (%s -> %s) references unknown vertex %q", i, a.From, a.To, v)
			}
		}
		if err := g.AddArc(dag.Arc{Child: a.From, Parent: a.To, Index: a.Order}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ImportJSON reads the serialized graph file at path.
// It returns the same errors as [ReadJSON], plus FILE_NOT_FOUND and
// INVALID_PATH for unusable paths.
func ImportJSON(path string) (*dag.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadArcs builds a graph from an arc list read from r.
// See [dag.ParseRecords] for the format and errors.
func ReadArcs(r io.Reader) (*dag.Graph, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return dag.ParseRecords(lines)
}

// ImportArcs reads the arc list file at path.
func ImportArcs(path string) (*dag.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadArcs(f)
}

// ReadOps parses an operation table read from r.
// See [ops.ParseTable] for the format and errors.
func ReadOps(r io.Reader) (ops.Table, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return ops.ParseTable(lines)
}

// ImportOps reads the operation table file at path.
func ImportOps(path string) (ops.Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadOps(f)
}

// Sniff reports whether the content at path looks like a serialized graph
// (its first non-space byte is '{') rather than an arc list.
func Sniff(path string) (bool, error) {
	f, err := open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return false, nil
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case 0xEF:
			// UTF-8 byte order mark
			_, _ = br.Discard(2)
			continue
		}
		return b == '{', nil
	}
}

func open(path string) (*os.File, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "file %s not found", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

// readLines splits r into lines without their terminators. Lines may be
// arbitrarily long.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read input")
	}
	return lines, nil
}

// ReadFile returns the content of the file at path, with the same path
// validation and error codes as the Import functions.
func ReadFile(path string) ([]byte, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}
