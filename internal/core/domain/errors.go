package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by usecases and storage adapters.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrRateLimited = errors.New("too many requests")
)

// ValidationError marks user-correctable input problems (400). Message
// is safe to surface to the caller as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a specific field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError unwraps err into a ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// DependencyError marks a downstream delivery failure (502), e.g. the
// SMTP relay refusing a contact-form notification.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s dependency failed: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }
