package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrGenerationFailed = errors.New("generation failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// GenerationError wraps a failure of the external generation service.
// Network failures, non-2xx upstream responses and malformed response
// bodies all normalize to this one type; the original cause is kept.
type GenerationError struct {
	Op    string // "text" or "image"
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Op, e.Cause)
}

func (e *GenerationError) Unwrap() error { return ErrGenerationFailed }

// NewGenerationError wraps cause as a GenerationError for the given operation.
func NewGenerationError(op string, cause error) *GenerationError {
	return &GenerationError{Op: op, Cause: cause}
}
