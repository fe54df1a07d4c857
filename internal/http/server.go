// Package http provides HTTP server implementation and router assembly.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/taskman/internal/auth/http"
	taskHTTP "github.com/allisson/taskman/internal/task/http"
)

// Server represents the main HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database connection is used only
// by the readiness endpoint; SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:     db,
		logger: logger,
	}
}

// RouterConfig holds the handlers and middleware mounted by SetupRouter.
type RouterConfig struct {
	AuthHandler    *authHTTP.AuthHandler
	TaskHandler    *taskHTTP.TaskHandler
	AuthMiddleware gin.HandlerFunc

	// LoginRateLimitMiddleware guards the login endpoint. Optional.
	LoginRateLimitMiddleware gin.HandlerFunc
	// MetricsMiddleware records per-request HTTP metrics. Optional.
	MetricsMiddleware gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string
	GinMode          string
}

// SetupRouter assembles the Gin router with all routes and middleware.
func (s *Server) SetupRouter(cfg RouterConfig) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Authentication endpoints (no auth required)
	auth := router.Group("/auth")
	auth.POST("/register", cfg.AuthHandler.RegisterHandler)
	auth.POST("/refresh", cfg.AuthHandler.RefreshHandler)
	if cfg.LoginRateLimitMiddleware != nil {
		auth.POST("/token", cfg.LoginRateLimitMiddleware, cfg.AuthHandler.LoginHandler)
	} else {
		auth.POST("/token", cfg.AuthHandler.LoginHandler)
	}

	// Task endpoints (authentication required)
	tasks := router.Group("/tasks", cfg.AuthMiddleware)
	tasks.POST("", cfg.TaskHandler.CreateTaskHandler)
	tasks.GET("", cfg.TaskHandler.ListTasksHandler)
	tasks.GET("/search", cfg.TaskHandler.SearchTasksHandler)
	tasks.GET("/:id", cfg.TaskHandler.GetTaskHandler)
	tasks.PATCH("/:id", cfg.TaskHandler.UpdateTaskHandler)
	tasks.DELETE("/:id", cfg.TaskHandler.DeleteTaskHandler)

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. It checks
// the database connection and returns 503 until it is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	ready := true
	if s.db == nil {
		ready = false
		components["database"] = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness check failed", slog.String("error", err.Error()))
			ready = false
			components["database"] = "error"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router != nil {
		s.server.Handler = s.router
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
