package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

type graph struct {
	Vertices []string `json:"vertices"`
	Arcs     []arc    `json:"arcs"`
}

type arc struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Order int    `json:"order"`
}

// WriteJSON encodes g as a serialized graph and writes it to w.
// Arcs are sorted by order (stable), so the output can be re-read with
// [ReadJSON] and handed to any later stage.
func WriteJSON(g *dag.Graph, w io.Writer) error {
	out := graph{
		Vertices: append([]string{}, g.Vertices()...),
		Arcs:     make([]arc, 0, g.ArcCount()),
	}
	for _, a := range g.SortedArcs() {
		out.Arcs = append(out.Arcs, arc{From: a.Child, To: a.Parent, Order: a.Index})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *dag.Graph, path string) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return closeFile(f, path)
}

// WriteText writes s to path exactly, without a trailing newline.
func WriteText(path, s string) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, s); err != nil {
		f.Close()
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "write %s", path)
	}
	return closeFile(f, path)
}

func create(path string) (*os.File, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	return f, nil
}

func closeFile(f *os.File, path string) error {
	if err := f.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "close %s", path)
	}
	return nil
}
