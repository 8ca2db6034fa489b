package api

import (
	"github.com/userhub/userhub/pkg/errors"
	"github.com/userhub/userhub/pkg/records"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse confirms a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string `json:"token"`
}

// RecordCreateRequest represents a request to create a record. Age is a
// pointer so zero passes the required check; adult is derived server-side
// and never accepted from the client.
type RecordCreateRequest struct {
	Name  string       `json:"name" binding:"required"`
	Email string       `json:"email" binding:"required,email"`
	Age   *int         `json:"age" binding:"required,min=0,max=125"`
	Role  records.Role `json:"role" binding:"required,oneof=admin user"`
}

// RecordUpdateRequest represents a partial update; absent fields keep their
// stored values
type RecordUpdateRequest struct {
	Name  *string       `json:"name" binding:"omitempty"`
	Email *string       `json:"email" binding:"omitempty,email"`
	Age   *int          `json:"age" binding:"omitempty,min=0,max=125"`
	Role  *records.Role `json:"role" binding:"omitempty,oneof=admin user"`
}

// DeleteAllResponse reports how many records a bulk delete removed
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code      errors.ErrorCode `json:"code"`
	Message   string           `json:"message"`
	RequestID string           `json:"request_id,omitempty"`
}
