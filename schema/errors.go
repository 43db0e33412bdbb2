package schema

import (
	"fmt"
	"strings"
)

// FieldError reports a single validation failure at a field path.
type FieldError struct {
	// Path locates the offending value, e.g. "painPoints[2].severity".
	Path string
	// Reason explains why the value was rejected.
	Reason string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ValidationError carries every field failure found in one validation pass,
// so callers can see all offending fields at once rather than one per retry.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "schema %q validation failed (%d error", e.Schema, len(e.Errors))
	if len(e.Errors) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(")")
	for _, fe := range e.Errors {
		sb.WriteString("; ")
		sb.WriteString(fe.String())
	}
	return sb.String()
}

// Add appends one field failure.
func (e *ValidationError) Add(path, reason string) {
	e.Errors = append(e.Errors, FieldError{Path: path, Reason: reason})
}
