package models

import "fmt"

// ValidationError reports a missing or malformed required field. It is
// raised before any store mutation, so a failed validation never leaves a
// partially written mesocycle behind.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalidf builds a ValidationError for the given field.
func Invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
