package expr

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

var (
	// ErrNoExpression is returned when the source is empty.
	ErrNoExpression = errors.New("empty expression")

	// ErrInvalidSyntax is returned when the source is not a valid HCL expression.
	ErrInvalidSyntax = errors.New("invalid expression syntax")

	// ErrUnsupportedSyntax is returned for valid HCL that is not arithmetic.
	ErrUnsupportedSyntax = errors.New("unsupported expression syntax")

	// ErrUnknownFunction is returned for calls to functions other than the rule set.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrArgumentCount is returned when a function gets the wrong number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")

	// ErrUnknownVariable is returned when an identifier has no bound Value.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrInvalidBinding is returned when an identifier is bound to a Value
	// that is zero, stale or owned by another graph.
	ErrInvalidBinding = errors.New("invalid variable binding")
)

// SyntaxError reports a problem at a position in the expression source.
type SyntaxError struct {
	Range   hcl.Range // Source range of the offending term
	Message string    // Human-readable description
	Err     error     // Base error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Range.Start.Line, e.Range.Start.Column, e.Message)
}

// Unwrap returns the base error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func newSyntaxError(rng hcl.Range, err error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Range:   rng,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
