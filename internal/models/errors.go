package models

import (
	"errors"
	"fmt"
)

const (
	CodeAuthentication   = "AUTHENTICATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeForbidden        = "FORBIDDEN"
	CodeStorage          = "STORAGE_ERROR"
)

// AppError represents a custom application error. Message is safe to show to the caller;
// Err carries the underlying cause and is only ever logged.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so callers can write errors.Is(err, models.ErrNotFound).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrUnauthenticated  = &AppError{Code: CodeAuthentication, Message: "unauthenticated"}
	ErrNotFound         = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrValidation       = &AppError{Code: CodeValidation, Message: "invalid input"}
	ErrInvalidOperation = &AppError{Code: CodeInvalidOperation, Message: "invalid operation"}
	ErrForbidden        = &AppError{Code: CodeForbidden, Message: "forbidden"}
	ErrStorage          = &AppError{Code: CodeStorage, Message: "storage failure"}
)

func NewAuthenticationError(message string) *AppError {
	return &AppError{Code: CodeAuthentication, Message: message}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewInvalidOperationError(message string) *AppError {
	return &AppError{Code: CodeInvalidOperation, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewStorageError wraps a data store failure behind a generic message.
func NewStorageError(message string, err error) *AppError {
	if message == "" {
		message = "Something went wrong"
	}
	return &AppError{Code: CodeStorage, Message: message, Err: err}
}

// AsAppError returns err as an *AppError, wrapping unknown errors as storage failures.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewStorageError("", err)
}
