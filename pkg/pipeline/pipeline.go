// Package pipeline runs the build, validate, render and evaluate stages of
// exprgraph with caching, logging and instrumentation.
//
// The core packages ([dag], [ops], [eval], [expr]) are pure and never log.
// This package wraps them for the CLI: it reads inputs, times each stage,
// consults the cache, emits observability hooks and logs progress.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Build: read an arc list (or a serialized graph) into a [dag.Graph]
//  2. Validate: check acyclicity and find the terminal vertex
//  3. Render: produce nested expression text or a node-link diagram
//  4. Evaluate: compute the terminal's value from an operation table
//
// Each stage can be run independently or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:      "input.txt",
//	    Operations: "operations.txt",
//	    Format:     pipeline.FormatExpr,
//	})
//	fmt.Println(string(result.Rendered), eval.FormatValue(result.Eval.Value))
//
// [dag]: github.com/matzehuels/exprgraph/pkg/dag
// [ops]: github.com/matzehuels/exprgraph/pkg/ops
// [eval]: github.com/matzehuels/exprgraph/pkg/eval
// [expr]: github.com/matzehuels/exprgraph/pkg/render/expr
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exprgraph/pkg/dag"
	errs "github.com/matzehuels/exprgraph/pkg/errors"
	"github.com/matzehuels/exprgraph/pkg/eval"
	graphio "github.com/matzehuels/exprgraph/pkg/io"
	"github.com/matzehuels/exprgraph/pkg/ops"
)

// =============================================================================
// Default Values
// =============================================================================

// Input formats.
const (
	InputAuto = "auto"
	InputArcs = "arcs"
	InputJSON = "json"
)

// Render formats.
const (
	FormatExpr = "expr"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatExpr: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// ValidInputFormats is the set of supported input formats.
var ValidInputFormats = map[string]bool{
	InputAuto: true,
	InputArcs: true,
	InputJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Build options
	Input       string `json:"input"`                  // arc list or serialized graph path
	InputFormat string `json:"input_format,omitempty"` // auto, arcs or json

	// Evaluate options
	Operations string `json:"operations,omitempty"` // operation table path
	Trace      bool   `json:"trace,omitempty"`      // keep the per-vertex trace

	// Render options
	Format   string  `json:"format,omitempty"`   // empty skips rendering in Execute
	Detailed bool    `json:"detailed,omitempty"` // annotate diagrams with operations and values
	Scale    float64 `json:"scale,omitempty"`    // PNG only

	Refresh bool `json:"refresh,omitempty"` // recompute and overwrite cached results

	// Runtime options (not serialized)
	Logger *log.Logger        `json:"-"`
	Table  ops.Table          `json:"-"` // preloaded table, takes precedence over Operations
	Values map[string]float64 `json:"-"` // vertex values for detailed diagrams

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs.
	RunID string

	// Graph is the built graph.
	Graph *dag.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Terminal is the validated terminal vertex.
	Terminal string

	// Rendered holds the render output, nil when no format was requested.
	Rendered []byte

	// Eval holds the evaluation result, nil when no operations were given.
	Eval *eval.Result

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount  int
	ArcCount     int
	Depth        int // longest leaf-to-terminal path
	Steps        int // vertices computed by the evaluator
	BuildTime    time.Duration
	ValidateTime time.Duration
	RenderTime   time.Duration
	EvalTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool
	RenderHit bool
	EvalHit   bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: expr, dot, svg, pdf, png)", format)
	}
	return nil
}

// ValidateInputFormat checks that an input format is valid.
func ValidateInputFormat(format string) error {
	if !ValidInputFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid input format: %q (must be one of: auto, arcs, json)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if o.Format != "" {
		if err := o.ValidateForRender(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for building.
func (o *Options) ValidateForBuild() error {
	if o.Input == "" {
		return errs.New(errs.ErrCodeInvalidInput, "input is required")
	}
	if err := errs.ValidatePath(o.Input); err != nil {
		return err
	}
	if o.InputFormat == "" {
		o.InputFormat = InputAuto
	}
	if err := ValidateInputFormat(o.InputFormat); err != nil {
		return err
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if o.Format == "" {
		o.Format = FormatExpr
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLoggerDefault()
	return ValidateFormat(o.Format)
}

// ValidateForEvaluate checks that an operation table is available.
func (o *Options) ValidateForEvaluate() error {
	if o.Table == nil && o.Operations == "" {
		return errs.New(errs.ErrCodeInvalidInput, "operations are required for evaluation")
	}
	if o.Table == nil {
		if err := errs.ValidatePath(o.Operations); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsDiagram reports whether the render format is a node-link diagram.
func (o *Options) IsDiagram() bool {
	return o.Format != "" && o.Format != FormatExpr
}

// ResolveInputFormat returns the concrete input format. Auto resolves by
// file extension (.json), then by content: input starting with '{' is a
// serialized graph, anything else an arc list.
func (o *Options) ResolveInputFormat() string {
	if o.InputFormat != "" && o.InputFormat != InputAuto {
		return o.InputFormat
	}
	if strings.EqualFold(filepath.Ext(o.Input), ".json") {
		return InputJSON
	}
	if isJSON, err := graphio.Sniff(o.Input); err == nil && isJSON {
		return InputJSON
	}
	return InputArcs
}
