// Package errors provides structured error handling for userhub
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents specific error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Authentication/Authorization errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeNoToken      ErrorCode = "NO_TOKEN"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"

	// Persistence errors
	ErrCodeStore ErrorCode = "STORE_ERROR"
)

// Error represents a structured error in userhub
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error code to an HTTP status
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeConflict:
		return http.StatusBadRequest
	case ErrCodeUnauthorized, ErrCodeNoToken:
		return http.StatusUnauthorized
	case ErrCodeInvalidToken:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new error with a code and message
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewWithCause creates a new error wrapping an underlying cause
func NewWithCause(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation error constructors

func NewValidationError(message string) *Error {
	return New(ErrCodeValidation, message)
}

func NewMissingFieldError(field string) *Error {
	return New(ErrCodeMissingField, fmt.Sprintf("missing required field: %s", field))
}

// Authentication error constructors

func NewUnauthorizedError(message string) *Error {
	return New(ErrCodeUnauthorized, message)
}

func NewNoTokenError() *Error {
	return New(ErrCodeNoToken, "no bearer token provided")
}

func NewInvalidTokenError() *Error {
	return New(ErrCodeInvalidToken, "invalid or expired token")
}

// Resource error constructors

func NewNotFoundError(resource string) *Error {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func NewConflictError(message string) *Error {
	return New(ErrCodeConflict, message)
}

// Persistence error constructors

func NewStoreError(message string, cause error) *Error {
	return NewWithCause(ErrCodeStore, message, cause)
}

// CodeOf returns the error code of err, or ErrCodeStore if err is not a
// structured error. A nil err yields an empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeStore
}

// AsError extracts a structured error from err, wrapping unknown errors
// as STORE_ERROR so callers always see the closed code set.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewStoreError("unexpected storage failure", err)
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
