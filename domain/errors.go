package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeExternal marks upstream provider failures (Canvas, Google).
	ErrCodeExternal ErrorCode = "EXTERNAL"
	// ErrCodePersistence marks durable-store failures. The repository layer
	// recovers from these by degrading to the in-memory backend where it can.
	ErrCodePersistence ErrorCode = "PERSISTENCE"
	ErrCodeInternal    ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound  = NewError(ErrCodeNotFound, "task not found")
	ErrTitleRequired = NewError(ErrCodeInvalid, "title is required")
	ErrNotConnected  = NewError(ErrCodeUnauthorized, "not connected to Google Calendar")
	ErrNotConfigured = NewError(ErrCodeInvalid, "integration not configured")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
