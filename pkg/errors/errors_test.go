package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	err := New(ErrCodeNotFound, "user not found")
	assert.Equal(t, "[NOT_FOUND] user not found", err.Error())

	wrapped := NewWithCause(ErrCodeStore, "query failed", fmt.Errorf("disk full"))
	assert.Contains(t, wrapped.Error(), "STORE_ERROR")
	assert.Contains(t, wrapped.Error(), "disk full")
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewStoreError("storage failure", cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"validation", NewValidationError("bad input"), http.StatusBadRequest},
		{"missing field", NewMissingFieldError("email"), http.StatusBadRequest},
		{"conflict", NewConflictError("email already registered"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("invalid email or password"), http.StatusUnauthorized},
		{"no token", NewNoTokenError(), http.StatusUnauthorized},
		{"invalid token", NewInvalidTokenError(), http.StatusForbidden},
		{"not found", NewNotFoundError("user"), http.StatusNotFound},
		{"store", NewStoreError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.Equal(t, ErrCodeConflict, CodeOf(NewConflictError("dup")))
	assert.Equal(t, ErrCodeStore, CodeOf(fmt.Errorf("plain error")))

	// Wrapped structured errors keep their code
	wrapped := fmt.Errorf("context: %w", NewNotFoundError("user"))
	assert.Equal(t, ErrCodeNotFound, CodeOf(wrapped))
}

func TestAsError(t *testing.T) {
	orig := NewValidationError("bad")
	got := AsError(fmt.Errorf("outer: %w", orig))
	require.NotNil(t, got)
	assert.Equal(t, ErrCodeValidation, got.Code)

	plain := AsError(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeStore, plain.Code)
	assert.Error(t, plain.Cause)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewNoTokenError(), ErrCodeNoToken))
	assert.False(t, IsCode(NewNoTokenError(), ErrCodeInvalidToken))
}
