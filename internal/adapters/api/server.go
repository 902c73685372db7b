// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to session commands
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/core/dashboard"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

const defaultSessionCookieName = "weatherdash_session"

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port      int
	Dashboard ports.DashboardConfig
}

// SessionOpener resolves the session behind a request
type SessionOpener interface {
	Open(ctx context.Context, id string) (*dashboard.Session, error)
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router        *gin.Engine
	config        ServerConfig
	sessions      SessionOpener
	healthChecker ports.SystemHealthChecker
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config        ServerConfig
	Sessions      SessionOpener
	HealthChecker ports.SystemHealthChecker
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	if opts.Config.Dashboard.SessionCookieName == "" {
		opts.Config.Dashboard.SessionCookieName = defaultSessionCookieName
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger())
	}

	server := &HTTPServerAdapter{
		router:        router,
		config:        opts.Config,
		sessions:      opts.Sessions,
		healthChecker: opts.HealthChecker,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Sessions == nil {
		return errors.NewValidationError("session opener is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	api.GET("/config", s.getConfig)

	session := api.Group("", s.sessionMiddleware())
	{
		session.GET("/session", s.getSession)
		session.POST("/search", s.search)
		session.POST("/locate", s.locate)
		session.POST("/view", s.applyView)
		session.GET("/table", s.getTable)
		session.POST("/preferences/unit", s.toggleUnit)
		session.POST("/preferences/theme", s.toggleTheme)
		session.POST("/chat", s.chat)
	}

	s.router.GET("/healthz", s.getHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", s.config.Port)
	return s.router.Run(fmt.Sprintf(":%d", s.config.Port))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// getConfig handles GET /api/config requests
func (s *HTTPServerAdapter) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		GeolocationTimeoutMS: s.config.Dashboard.GeolocationTimeout.Milliseconds(),
		PageSize:             s.config.Dashboard.PageSize,
	})
}

// getHealth handles GET /healthz requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())
	status := http.StatusOK
	if !infrastructure.Healthy(results) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, results)
}
