package goalplan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := NewError("EVALUATION_FAILED", "could not evaluate")
	assert.Equal(t, "EVALUATION_FAILED: could not evaluate", err.Error())
	assert.Nil(t, err.Unwrap())

	wrapped := WrapError(ErrInternal, "EVALUATION_PANIC", "evaluation panicked")
	assert.Equal(t, "EVALUATION_PANIC: evaluation panicked: internal evaluation error", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrInternal)
	assert.ErrorIs(t, wrapped, &Error{Code: "EVALUATION_PANIC"})
	assert.NotErrorIs(t, wrapped, &Error{Code: "OTHER"})
	assert.False(t, IsValidationError(wrapped))
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationErrors
		wantMsg string
	}{
		{
			name:    "empty",
			err:     &ValidationErrors{},
			wantMsg: "validation failed",
		},
		{
			name: "single",
			err: &ValidationErrors{Errors: []*ValidationError{
				{Field: "amount", Message: "must be positive"},
			}},
			wantMsg: "validation error on field 'amount': must be positive",
		},
		{
			name: "multiple",
			err: &ValidationErrors{Errors: []*ValidationError{
				{Field: "amount", Message: "must be positive"},
				{Field: "deadline", Message: "is required"},
			}},
			wantMsg: "2 validation errors occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.True(t, IsValidationError(tt.err))
			assert.True(t, IsValidationError(fmt.Errorf("goal g1: %w", tt.err)))
		})
	}
}

func TestRecordError(t *testing.T) {
	err := &RecordError{Kind: "income", Index: 2, Name: "Bonus", Reason: "amount is not finite"}
	assert.Equal(t, `income record 2 ("Bonus"): amount is not finite`, err.Error())
	assert.True(t, errors.Is(err, ErrMalformedRecord))
	assert.False(t, IsValidationError(err))
}
