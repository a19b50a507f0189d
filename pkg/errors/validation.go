package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds vertex labels read from untrusted input.
const maxLabelLength = 256

// ValidateLabel validates a vertex label for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters
//   - No structural characters of the arc list format ("(", ")", ",")
//   - Maximum length of 256 bytes
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "vertex label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "vertex label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "vertex label %q contains control characters", label)
		}
	}

	if strings.ContainsAny(label, "(),") {
		return New(ErrCodeInvalidLabel, "vertex label %q contains reserved characters", label)
	}

	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
