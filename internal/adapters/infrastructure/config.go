package infrastructure

import (
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetWeatherConfig returns upstream client configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		APIKey:         c.config.Weather.APIKey,
		BaseURL:        c.config.Weather.BaseURL,
		GeoBaseURL:     c.config.Weather.GeoBaseURL,
		RequestTimeout: c.config.Weather.RequestTimeout(),
		RateLimitRPS:   c.config.Weather.RateLimitRPS,
		RateLimitBurst: c.config.Weather.RateLimitBurst,
		EnableLogging:  c.config.Weather.EnableLogging,
		LogFilePath:    c.config.Weather.LogFilePath,
	}
}

// GetDashboardConfig returns session behavior configuration
func (c *ConfigProviderAdapter) GetDashboardConfig() ports.DashboardConfig {
	return ports.DashboardConfig{
		PageSize:           c.config.Dashboard.PageSize,
		GeolocationTimeout: c.config.Dashboard.GeolocationTimeout(),
		SessionCookieName:  c.config.Dashboard.SessionCookieName,
		SessionIdleTimeout: c.config.Dashboard.SessionIdleTimeout(),
		MaxSessions:        c.config.Dashboard.MaxSessions,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetDatabaseConfig returns database configuration
func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	return ports.DatabaseConfig{
		Host:     c.config.Database.Host,
		Port:     c.config.Database.Port,
		User:     c.config.Database.User,
		Password: c.config.Database.Password,
		Name:     c.config.Database.Name,
		SSLMode:  c.config.Database.SSLMode,
	}
}

// GetFlagStoreConfig returns flag persistence configuration
func (c *ConfigProviderAdapter) GetFlagStoreConfig() ports.FlagStoreConfig {
	return ports.FlagStoreConfig{
		Type: c.config.FlagStore.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.FlagStore.Redis.Addr,
			Password:     c.config.FlagStore.Redis.Password,
			DB:           c.config.FlagStore.Redis.DB,
			DialTimeout:  c.config.FlagStore.Redis.DialTimeout,
			ReadTimeout:  c.config.FlagStore.Redis.ReadTimeout,
			WriteTimeout: c.config.FlagStore.Redis.WriteTimeout,
		},
	}
}
