// Package api provides the HTTP REST server for userhub
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/userhub/userhub/pkg/accounts"
	"github.com/userhub/userhub/pkg/config"
	"github.com/userhub/userhub/pkg/logger"
	"github.com/userhub/userhub/pkg/records"
)

// Server represents the API server instance
type Server struct {
	config  *config.Config
	logger  logger.Logger
	router  *gin.Engine
	server  *http.Server
	auth    *accounts.AuthService
	records *records.Repository
	db      *gorm.DB
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config, log logger.Logger, auth *accounts.AuthService, recordRepo *records.Repository, db *gorm.DB) *Server {
	// Use log level as a proxy for environment
	if cfg.LogLevel == "error" || cfg.LogLevel == "warn" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		config:  cfg,
		logger:  log,
		router:  gin.New(),
		auth:    auth,
		records: recordRepo,
		db:      db,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.config.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	s.router.Use(cors.New(corsConfig))
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	// Unprotected credential routes
	s.router.POST("/register", s.register)
	s.router.POST("/login", s.login)

	// Record routes, gated by the bearer-token middleware
	users := s.router.Group("/users")
	users.Use(s.authMiddleware())
	{
		users.GET("", s.listUsers)
		users.GET("/:id", s.getUser)
		users.POST("", s.createUser)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
		users.DELETE("", s.deleteAllUsers)
	}
}

// Start starts the API server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Info("Starting API server", map[string]interface{}{
		"addr": s.server.Addr,
		"mode": gin.Mode(),
	})

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Failed to start server", err)
		}
	}()

	<-ctx.Done()

	s.logger.Info("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Stop gracefully stops the API server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
