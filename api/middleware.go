package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/userhub/userhub/pkg/accounts"
	apperrors "github.com/userhub/userhub/pkg/errors"
)

const identityKey = "identity"

// requestIDMiddleware adds a unique request ID to each request
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// loggingMiddleware provides request logging
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		s.logger.Info("HTTP Request", map[string]interface{}{
			"method":      param.Method,
			"path":        param.Path,
			"status_code": param.StatusCode,
			"latency":     param.Latency,
			"client_ip":   param.ClientIP,
			"request_id":  param.Keys["request_id"],
		})
		return ""
	})
}

// authMiddleware rejects requests without a valid bearer token and attaches
// the caller identity for downstream handlers. Rejection happens before any
// handler or store access.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortWithError(c, apperrors.NewNoTokenError())
			return
		}

		identity, err := s.auth.ValidateToken(tokenString)
		if err != nil {
			abortWithError(c, apperrors.AsError(err))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// identityFromContext returns the authenticated caller, or nil when the
// auth middleware did not run
func identityFromContext(c *gin.Context) *accounts.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*accounts.Identity); ok {
			return identity
		}
	}
	return nil
}

// extractTokenFromHeader pulls the token out of "Bearer <token>"
func extractTokenFromHeader(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}
