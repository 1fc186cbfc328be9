// Package errors provides custom error types for catalog operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// ErrValidation is matched by every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports malformed or out-of-constraint input.
// Field holds the JSON name of the offending field, or is empty when the whole input is at fault.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
