package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdash.app/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("MissingAPIKey", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "")

		config, err := LoadConfig()

		assert.Nil(t, config)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "OPENWEATHERMAP_API_KEY")
	})

	t.Run("DefaultValues", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "test-api-key")

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
		assert.Equal(t, "https://api.openweathermap.org/geo/1.0", config.Weather.GeoBaseURL)
		assert.Equal(t, 10*time.Second, config.Weather.RequestTimeout())
		assert.Equal(t, 1.0, config.Weather.RateLimitRPS)
		assert.Equal(t, 5, config.Weather.RateLimitBurst)
		assert.Equal(t, 10, config.Dashboard.PageSize)
		assert.Equal(t, 5000*time.Millisecond, config.Dashboard.GeolocationTimeout())
		assert.Equal(t, "weatherdash_session", config.Dashboard.SessionCookieName)
		assert.Equal(t, 30*time.Minute, config.Dashboard.SessionIdleTimeout())
		assert.Equal(t, 10000, config.Dashboard.MaxSessions)
		assert.Equal(t, FlagStoreTypeMemory, config.FlagStore.Type)
		assert.Equal(t, "localhost:6379", config.FlagStore.Redis.Addr)
		assert.Equal(t, "weatherdash", config.Database.Name)
	})

	t.Run("CustomValues", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "custom-key")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("OPENWEATHERMAP_API_BASE_URL", "http://localhost:8081/data/2.5")
		t.Setenv("OPENWEATHERMAP_GEO_BASE_URL", "http://localhost:8081/geo/1.0")
		t.Setenv("WEATHER_RATE_LIMIT_RPS", "0.5")
		t.Setenv("DASHBOARD_PAGE_SIZE", "20")
		t.Setenv("GEOLOCATION_TIMEOUT_MS", "8000")
		t.Setenv("FLAG_STORE_TYPE", "database")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_SSL_MODE", "require")

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "custom-key", config.Weather.APIKey)
		assert.Equal(t, "http://localhost:8081/data/2.5", config.Weather.BaseURL)
		assert.Equal(t, 0.5, config.Weather.RateLimitRPS)
		assert.Equal(t, 20, config.Dashboard.PageSize)
		assert.Equal(t, 8*time.Second, config.Dashboard.GeolocationTimeout())
		assert.Equal(t, FlagStoreTypeDatabase, config.FlagStore.Type)
		assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=weatherdash sslmode=require", config.Database.GetDSN())
	})

	t.Run("UnknownFlagStoreType", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "test-api-key")
		t.Setenv("FLAG_STORE_TYPE", "etcd")

		_, err := LoadConfig()
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "FLAG_STORE_TYPE")
	})
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Weather: WeatherConfig{
			APIKey:                "key",
			BaseURL:               "https://api.openweathermap.org/data/2.5",
			GeoBaseURL:            "https://api.openweathermap.org/geo/1.0",
			RequestTimeoutSeconds: 10,
			RateLimitRPS:          1,
			RateLimitBurst:        5,
			EnableLogging:         true,
			LogFilePath:           "logs/weather_client.log",
		},
		Dashboard: DashboardConfig{
			PageSize:                  10,
			GeolocationTimeoutMS:      5000,
			SessionCookieName:         "weatherdash_session",
			SessionIdleTimeoutMinutes: 30,
			MaxSessions:               10000,
		},
		FlagStore: FlagStoreConfig{
			Type:  FlagStoreTypeMemory,
			Redis: RedisConfig{Addr: "localhost:6379", DialTimeout: 5, ReadTimeout: 3, WriteTimeout: 3},
		},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "weatherdash", SSLMode: "disable"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"PortOutOfRange", func(c *Config) { c.Server.Port = 70000 }, "SERVER_PORT"},
		{"BaseURLScheme", func(c *Config) { c.Weather.BaseURL = "ftp://x" }, "OPENWEATHERMAP_API_BASE_URL"},
		{"GeoBaseURLScheme", func(c *Config) { c.Weather.GeoBaseURL = "" }, "OPENWEATHERMAP_GEO_BASE_URL"},
		{"ZeroTimeout", func(c *Config) { c.Weather.RequestTimeoutSeconds = 0 }, "WEATHER_REQUEST_TIMEOUT_SECONDS"},
		{"ZeroRate", func(c *Config) { c.Weather.RateLimitRPS = 0 }, "WEATHER_RATE_LIMIT_RPS"},
		{"ZeroBurst", func(c *Config) { c.Weather.RateLimitBurst = 0 }, "WEATHER_RATE_LIMIT_BURST"},
		{"LoggingWithoutPath", func(c *Config) { c.Weather.LogFilePath = "" }, "WEATHER_LOG_FILE_PATH"},
		{"LogPathIgnoredWhenDisabled", func(c *Config) { c.Weather.EnableLogging = false; c.Weather.LogFilePath = "" }, ""},
		{"PageSizeZero", func(c *Config) { c.Dashboard.PageSize = 0 }, "DASHBOARD_PAGE_SIZE"},
		{"GeolocationTimeoutTooLarge", func(c *Config) { c.Dashboard.GeolocationTimeoutMS = 120000 }, "GEOLOCATION_TIMEOUT_MS"},
		{"BlankCookieName", func(c *Config) { c.Dashboard.SessionCookieName = " " }, "SESSION_COOKIE_NAME"},
		{"ZeroIdleTimeout", func(c *Config) { c.Dashboard.SessionIdleTimeoutMinutes = 0 }, "SESSION_IDLE_TIMEOUT_MINUTES"},
		{"ZeroMaxSessions", func(c *Config) { c.Dashboard.MaxSessions = 0 }, "MAX_SESSIONS"},
		{"RedisChecksAddr", func(c *Config) { c.FlagStore.Type = FlagStoreTypeRedis; c.FlagStore.Redis.Addr = "" }, "REDIS_ADDR"},
		{"RedisDBRange", func(c *Config) { c.FlagStore.Type = FlagStoreTypeRedis; c.FlagStore.Redis.DB = 16 }, "REDIS_DB"},
		{"RedisIgnoredForMemory", func(c *Config) { c.FlagStore.Redis.Addr = "" }, ""},
		{"DatabaseChecked", func(c *Config) { c.FlagStore.Type = FlagStoreTypeDatabase; c.Database.SSLMode = "maybe" }, "DB_SSL_MODE"},
		{"DatabaseIgnoredForMemory", func(c *Config) { c.Database.Host = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modify(&config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFlagStoreTypeFromString(t *testing.T) {
	assert.Equal(t, FlagStoreTypeMemory, FlagStoreTypeFromString("Memory"))
	assert.Equal(t, FlagStoreTypeRedis, FlagStoreTypeFromString("redis"))
	assert.Equal(t, FlagStoreTypeDatabase, FlagStoreTypeFromString("postgres"))
	assert.Equal(t, FlagStoreTypeUnknown, FlagStoreTypeFromString("etcd"))
	assert.Equal(t, "database", FlagStoreTypeDatabase.String())
}
