// Package errors provides structured error types for exprgraph.
//
// This package defines error codes and types that enable:
//   - One discriminated failure kind per pipeline stage
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages carrying line, vertex or operator context
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the stage that raises them:
//   - MALFORMED_*, DUPLICATE_*: graph and operation table input
//   - CYCLE_DETECTED, AMBIGUOUS_TERMINAL: structural validation
//   - MISSING_OPERATION, INVALID_*, ARITY_MISMATCH, CHILD_EVALUATION_FAILED: evaluation
//   - FILE_NOT_FOUND, INVALID_PATH, INTERNAL_ERROR: I/O and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateArc, "duplicate arc (%s, %s)", child, parent).AtLine(3)
//	if errors.Is(err, errors.ErrCodeDuplicateArc) {
//	    // Handle duplicate arc
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeChildEvaluationFailed, childErr, "cannot evaluate %q", v).ForVertex(v)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph construction errors
	ErrCodeMalformedRecord        Code = "MALFORMED_RECORD"
	ErrCodeDuplicateArc           Code = "DUPLICATE_ARC"
	ErrCodeDuplicateArgumentIndex Code = "DUPLICATE_ARGUMENT_INDEX"

	// Structural validation errors
	ErrCodeCycleDetected     Code = "CYCLE_DETECTED"
	ErrCodeAmbiguousTerminal Code = "AMBIGUOUS_TERMINAL"

	// Operation table and evaluation errors
	ErrCodeMalformedOperationRecord Code = "MALFORMED_OPERATION_RECORD"
	ErrCodeMissingOperation         Code = "MISSING_OPERATION"
	ErrCodeInvalidLeafOperation     Code = "INVALID_LEAF_OPERATION"
	ErrCodeInvalidOperation         Code = "INVALID_OPERATION"
	ErrCodeArityMismatch            Code = "ARITY_MISMATCH"
	ErrCodeChildEvaluationFailed    Code = "CHILD_EVALUATION_FAILED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidLabel  Code = "INVALID_LABEL"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code, diagnostic context and optional cause.
type Error struct {
	Code     Code   // Machine-readable error code
	Message  string // Human-readable message
	Line     int    // 1-based source line, 0 when not applicable
	Vertex   string // Vertex label the failure is about (optional)
	Operator string // Operator name involved (optional)
	Cause    error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// AtLine records the 1-based source line and returns e.
func (e *Error) AtLine(line int) *Error {
	e.Line = line
	return e
}

// ForVertex records the vertex label and returns e.
func (e *Error) ForVertex(v string) *Error {
	e.Vertex = v
	return e
}

// WithOperator records the operator name and returns e.
func (e *Error) WithOperator(op string) *Error {
	e.Operator = op
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted, so a
// CHILD_EVALUATION_FAILED wrapping a MISSING_OPERATION reports the former.
// Use [Has] to search the whole chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in err's chain carries code.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (with its line prefix) without the code.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Line > 0 {
			return fmt.Sprintf("line %d: %s", e.Line, e.Message)
		}
		return e.Message
	}
	return err.Error()
}

// Root returns the innermost *Error in err's chain, or nil if there is none.
// For evaluation failures this is the error raised at the vertex that
// actually failed, beneath any CHILD_EVALUATION_FAILED wrapper.
func Root(err error) *Error {
	var root *Error
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		root = e
		err = e.Cause
	}
	return root
}
