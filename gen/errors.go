package gen

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generation failures so callers can decide between
// retrying, repairing the prompt, or surfacing the failure.
type ErrorKind int

const (
	// KindBackend means the generation backend was unreachable or returned
	// a failure before any content could be validated.
	KindBackend ErrorKind = iota
	// KindSchemaViolation means the backend produced content that failed
	// schema validation. The wrapped error is the validator's
	// *schema.ValidationError when one is available.
	KindSchemaViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindBackend:
		return "backend"
	case KindSchemaViolation:
		return "schema_violation"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is the typed failure returned by the structured generation client.
type Error struct {
	Kind   ErrorKind
	Schema string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generation failed (%s) for schema %q: %v", e.Kind, e.Schema, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsBackend reports whether err is a generation error caused by the backend.
func IsBackend(err error) bool {
	return kindOf(err) == KindBackend
}

// IsSchemaViolation reports whether err is a generation error caused by
// content failing schema validation.
func IsSchemaViolation(err error) bool {
	return kindOf(err) == KindSchemaViolation
}

func kindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ErrorKind(-1)
}
