package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/userhub/userhub/pkg/errors"
)

func TestRegister(t *testing.T) {
	srv := setupTestServer(t)

	w := performRequest(srv.router, http.MethodPost, "/register", map[string]string{
		"email":    "a@x.com",
		"password": "pw123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp RegisterResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.NotEmpty(t, resp.Message)
}

func TestRegister_MissingFields(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"no email", map[string]string{"password": "pw123"}},
		{"no password", map[string]string{"email": "a@x.com"}},
		{"empty body", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(srv.router, http.MethodPost, "/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := setupTestServer(t)

	body := map[string]string{"email": "a@x.com", "password": "pw123"}

	w := performRequest(srv.router, http.MethodPost, "/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(srv.router, http.MethodPost, "/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, apperrors.ErrCodeConflict, resp.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := setupTestServer(t)

	w := performRequest(srv.router, http.MethodPost, "/register", map[string]string{
		"email":    "a@x.com",
		"password": "pw123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown email must return the same shape and status
	wrongPw := performRequest(srv.router, http.MethodPost, "/login", map[string]string{
		"email":    "a@x.com",
		"password": "nope",
	}, "")
	unknown := performRequest(srv.router, http.MethodPost, "/login", map[string]string{
		"email":    "ghost@x.com",
		"password": "pw123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)

	var respA, respB ErrorResponse
	decodeBody(t, wrongPw, &respA)
	decodeBody(t, unknown, &respB)
	assert.Equal(t, respA.Code, respB.Code)
	assert.Equal(t, respA.Message, respB.Message)
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	srv := setupTestServer(t)

	w := performRequest(srv.router, http.MethodGet, "/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, apperrors.ErrCodeNoToken, resp.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	srv := setupTestServer(t)

	headers := []string{
		"token-without-scheme",
		"Basic dXNlcjpwYXNz",
		"Bearer",
	}

	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header: %q", header)

		var resp ErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, apperrors.ErrCodeNoToken, resp.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	srv := setupTestServer(t)

	w := performRequest(srv.router, http.MethodGet, "/users", nil, "garbage.token.value")
	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, resp.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	srv := setupTestServer(t)

	token := registerAndLogin(t, srv, "a@x.com", "pw123")

	w := performRequest(srv.router, http.MethodGet, "/users", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
