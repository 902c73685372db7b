package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/adapters/api"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/dashboard"
	"weatherdash.app/internal/ports"
)

const sessionCleanupInterval = time.Minute

type Application struct {
	config *config.Config

	// Core
	sessions *dashboard.Manager

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig wires the application from an already loaded configuration
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	app := &Application{
		config: cfg,
	}

	if err := app.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := app.initializeCore(); err != nil {
		_ = app.deps.Cleanup()
		return nil, fmt.Errorf("initialize core: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = app.deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializePorts() error {
	slog.Info("Initializing application ports...")

	deps, err := NewDependencyContainer(a.config)
	if err != nil {
		return fmt.Errorf("create dependency container: %w", err)
	}

	a.deps = deps
	a.ports = deps.ApplicationPorts()
	slog.Info("Application ports initialized successfully")
	return nil
}

func (a *Application) initializeCore() error {
	slog.Info("Initializing session manager...")

	sessions, err := dashboard.NewManager(dashboard.ManagerDependencies{
		WeatherClient: a.ports.WeatherClient,
		FlagStore:     a.ports.FlagStore,
		Logger:        a.ports.Logger,
		Metrics:       a.ports.Metrics,
		PageSize:      a.config.Dashboard.PageSize,
		IdleTimeout:   a.config.Dashboard.SessionIdleTimeout(),
		MaxSessions:   a.config.Dashboard.MaxSessions,
	})
	if err != nil {
		return fmt.Errorf("create session manager: %w", err)
	}
	a.sessions = sessions

	slog.Info("Session manager initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	systemHealthChecker := infrastructure.NewSystemHealthChecker(a.deps.HealthCheckers())

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:      a.config.Server.Port,
			Dashboard: a.ports.ConfigProvider.GetDashboardConfig(),
		},
		Sessions:      a.sessions,
		HealthChecker: systemHealthChecker,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	a.sessions.StartCleanup(sessionCleanupInterval)

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")
	a.sessions.Stop()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error closing connections", "error", err)
	}

	slog.Info("Application shutdown complete", "sessions", a.sessions.Len())
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Sessions returns the session manager
func (a *Application) Sessions() *dashboard.Manager {
	return a.sessions
}
