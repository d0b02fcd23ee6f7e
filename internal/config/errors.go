package config

import "errors"

var (
	// ErrInvalidInput is the base error of every validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAssignment is returned for malformed name=value flags.
	ErrInvalidAssignment = errors.New("invalid assignment")

	// ErrUnknownField is returned for keys the input file does not define.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError is a validation failure with context.
type ValidationError struct {
	Field   string // Offending field, e.g. "inputs.a"
	Message string // Description
	Err     error  // Base error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the base error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error wrapping ErrInvalidInput.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     ErrInvalidInput,
	}
}
