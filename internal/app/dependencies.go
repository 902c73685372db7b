package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"weatherdash.app/internal/adapters/database"
	"weatherdash.app/internal/adapters/external"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
)

type DependencyContainer struct {
	config  *config.Config
	db      *gorm.DB
	redis   *external.RedisFlagStore
	fileLog *infrastructure.FileLoggerAdapter
	ports   *ports.ApplicationPorts
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: cfg,
	}

	if cfg.FlagStore.Type == config.FlagStoreTypeDatabase {
		if err := container.initializeDatabase(); err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...")

	db, err := database.InitDB(c.config.Database)
	if err != nil {
		return err
	}

	slog.Info("Running database migrations...")
	if err := database.RunMigrations(db); err != nil {
		_ = database.CloseDB(db)
		return fmt.Errorf("run migrations: %w", err)
	}

	c.db = db
	slog.Info("Database connection established successfully")
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(slog.Default())

	// File logging mirrors every entry into the configured JSON log
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLog = fileLogger
			logger = infrastructure.NewMultiLogger(logger, fileLogger.WithComponent("weatherdash"))
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	metrics := infrastructure.NewPrometheusMetrics()

	owmClient, err := external.NewOpenWeatherMapClient(external.OpenWeatherMapClientParams{
		APIKey:     c.config.Weather.APIKey,
		BaseURL:    c.config.Weather.BaseURL,
		GeoBaseURL: c.config.Weather.GeoBaseURL,
		Timeout:    c.config.Weather.RequestTimeout(),
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return fmt.Errorf("create weather client: %w", err)
	}

	var weatherClient ports.WeatherClient = external.NewRateLimitedWeatherClient(
		owmClient, c.config.Weather.RateLimitRPS, c.config.Weather.RateLimitBurst, metrics)

	if c.config.Weather.EnableLogging {
		weatherClient = external.NewWeatherClientLoggingDecorator(weatherClient, logger)
		slog.Info("Weather client logging enabled")
	}

	var databaseStore ports.FlagStore
	if c.db != nil {
		databaseStore = database.NewFlagRepositoryAdapter(c.db)
	}

	flagStore, err := external.NewFlagStoreFactory().CreateFlagStore(&c.config.FlagStore, databaseStore)
	if err != nil {
		slog.Error("Failed to create flag store", "error", err)
		return fmt.Errorf("create flag store: %w", err)
	}
	if redisStore, ok := flagStore.(*external.RedisFlagStore); ok {
		c.redis = redisStore
	}

	slog.Info("Flag store initialized",
		"type", c.config.FlagStore.Type.String(),
		"redis_addr", c.config.FlagStore.Redis.Addr)

	c.ports = &ports.ApplicationPorts{
		WeatherClient:  weatherClient,
		FlagStore:      flagStore,
		ConfigProvider: infrastructure.NewConfigProviderAdapter(c.config),
		Logger:         logger,
		Metrics:        metrics,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// HealthCheckers returns the component checkers for the wired adapters
func (c *DependencyContainer) HealthCheckers() infrastructure.SystemHealthCheckerConfig {
	checkers := infrastructure.SystemHealthCheckerConfig{
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(c.ports.ConfigProvider.GetWeatherConfig()),
		ConfigProvider:    c.ports.ConfigProvider,
	}

	storeType := c.config.FlagStore.Type.String()
	switch {
	case c.db != nil:
		checkers.DatabaseChecker = infrastructure.NewDatabaseHealthChecker(c.db, database.NewFlagRepositoryAdapter(c.db))
		checkers.FlagStoreChecker = infrastructure.NewFlagStoreHealthChecker(storeType, nil)
	case c.redis != nil:
		checkers.FlagStoreChecker = infrastructure.NewFlagStoreHealthChecker(storeType, c.redis)
	default:
		checkers.FlagStoreChecker = infrastructure.NewFlagStoreHealthChecker(storeType, nil)
	}
	return checkers
}

// Cleanup closes database and redis connections and the log file
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	if c.fileLog != nil {
		if err := c.fileLog.Close(); err != nil {
			firstErr = err
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.db != nil {
		if err := database.CloseDB(c.db); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
