package errors

import (
	"fmt"
	"strings"
)

// ValidationError is an error with a field and messages.
type ValidationError struct {
	Code     int      `json:"code"`
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// NewValidationError returns a new ValidationError for a field.
func NewValidationError(field string, messages ...string) *ValidationError {
	return &ValidationError{
		Code:     400,
		Field:    field,
		Messages: messages,
	}
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, strings.Join(e.Messages, "; "))
}
