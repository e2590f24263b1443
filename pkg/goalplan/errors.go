package goalplan

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a goal or request violates its invariants
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedRecord is returned when an income or expense cannot be used in a calculation
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInternal marks an unexpected failure inside an evaluation
	ErrInternal = errors.New("internal evaluation error")
)

// Error represents an engine error
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports ValidationError as ErrInvalidInput
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []*ValidationError `json:"errors"`
}

// Error implements the error interface
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Is reports ValidationErrors as ErrInvalidInput
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// RecordError identifies the income or expense that could not be used
type RecordError struct {
	Kind   string
	Index  int
	Name   string
	Reason string
}

// Error implements the error interface
func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %d (%q): %s", e.Kind, e.Index, e.Name, e.Reason)
}

// Unwrap returns ErrMalformedRecord
func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

// NewError creates a new engine error
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidationError checks if err was caused by invalid input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
