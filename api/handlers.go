package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/userhub/userhub/pkg/errors"
	"github.com/userhub/userhub/pkg/records"
	"github.com/userhub/userhub/pkg/store"
)

// writeError maps a structured error onto the HTTP response. Store failures
// are logged with the request id and reported with a generic message.
func (s *Server) writeError(c *gin.Context, err error) {
	e := apperrors.AsError(err)
	requestID := c.GetString("request_id")

	message := e.Message
	if e.Code == apperrors.ErrCodeStore {
		s.logger.Error("store failure", e, map[string]interface{}{
			"request_id": requestID,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		})
		message = "internal server error"
	}

	c.JSON(e.HTTPStatus(), ErrorResponse{
		Code:      e.Code,
		Message:   message,
		RequestID: requestID,
	})
}

func abortWithError(c *gin.Context, e *apperrors.Error) {
	c.AbortWithStatusJSON(e.HTTPStatus(), ErrorResponse{
		Code:      e.Code,
		Message:   e.Message,
		RequestID: c.GetString("request_id"),
	})
}

// healthCheck reports service and database health
func (s *Server) healthCheck(c *gin.Context) {
	checks := map[string]string{"database": "ok"}
	status := "healthy"
	code := http.StatusOK

	if err := store.HealthCheck(s.db); err != nil {
		checks["database"] = err.Error()
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// register handles account registration
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apperrors.NewValidationError("email and password are required"))
		return
	}

	account, err := s.auth.Register(req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "account registered",
		Email:   account.Email,
	})
}

// login handles credential verification and token issuance
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apperrors.NewValidationError("email and password are required"))
		return
	}

	token, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// listUsers returns every record owned by the caller
func (s *Server) listUsers(c *gin.Context) {
	identity := identityFromContext(c)

	users, err := s.records.ListByOwner(identity.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// getUser returns a single owned record
func (s *Server) getUser(c *gin.Context) {
	identity := identityFromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	user, err := s.records.GetByOwner(id, identity.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// createUser creates a record stamped with the caller as owner
func (s *Server) createUser(c *gin.Context) {
	identity := identityFromContext(c)

	var req RecordCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	user := &records.User{
		Name:    req.Name,
		Email:   req.Email,
		Age:     *req.Age,
		Role:    req.Role,
		OwnerID: identity.ID,
	}
	if err := s.records.Create(user); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// updateUser applies a partial update to an owned record
func (s *Server) updateUser(c *gin.Context) {
	identity := identityFromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	var req RecordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	user, err := s.records.GetByOwner(id, identity.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.records.Update(user); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// deleteUser removes a single owned record
func (s *Server) deleteUser(c *gin.Context) {
	identity := identityFromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.records.DeleteByOwner(id, identity.ID); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteAllUsers removes every record owned by the caller
func (s *Server) deleteAllUsers(c *gin.Context) {
	identity := identityFromContext(c)

	deleted, err := s.records.DeleteAllByOwner(identity.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteAllResponse{Deleted: deleted})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid record id")
	}
	return uint(id), nil
}
