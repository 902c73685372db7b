package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"weatherdash.app/pkg/errors"
)

const (
	maxRedisDB            = 15
	maxPortNumber         = 65535
	maxPageSize           = 100
	maxRequestTimeoutSecs = 120
	maxGeolocationTimeout = 60000
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Dashboard DashboardConfig `split_words:"true"`
	FlagStore FlagStoreConfig `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type WeatherConfig struct {
	APIKey                string  `envconfig:"OPENWEATHERMAP_API_KEY"`
	BaseURL               string  `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	GeoBaseURL            string  `envconfig:"OPENWEATHERMAP_GEO_BASE_URL" default:"https://api.openweathermap.org/geo/1.0"`
	RequestTimeoutSeconds int     `envconfig:"WEATHER_REQUEST_TIMEOUT_SECONDS" default:"10"`
	RateLimitRPS          float64 `envconfig:"WEATHER_RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst        int     `envconfig:"WEATHER_RATE_LIMIT_BURST" default:"5"`
	EnableLogging         bool    `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath           string  `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_client.log"`
}

// RequestTimeout is the per-call HTTP timeout for the upstream client
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSeconds) * time.Second
}

type DashboardConfig struct {
	PageSize                  int    `envconfig:"DASHBOARD_PAGE_SIZE" default:"10"`
	GeolocationTimeoutMS      int    `envconfig:"GEOLOCATION_TIMEOUT_MS" default:"5000"`
	SessionCookieName         string `envconfig:"SESSION_COOKIE_NAME" default:"weatherdash_session"`
	SessionIdleTimeoutMinutes int    `envconfig:"SESSION_IDLE_TIMEOUT_MINUTES" default:"30"`
	MaxSessions               int    `envconfig:"MAX_SESSIONS" default:"10000"`
}

// GeolocationTimeout is the timeout handed to clients for position lookups
func (d DashboardConfig) GeolocationTimeout() time.Duration {
	return time.Duration(d.GeolocationTimeoutMS) * time.Millisecond
}

// SessionIdleTimeout is how long an untouched session stays in memory
func (d DashboardConfig) SessionIdleTimeout() time.Duration {
	return time.Duration(d.SessionIdleTimeoutMinutes) * time.Minute
}

// FlagStoreType selects where persisted session flags live
type FlagStoreType int

const (
	FlagStoreTypeUnknown FlagStoreType = iota
	FlagStoreTypeMemory
	FlagStoreTypeRedis
	FlagStoreTypeDatabase
)

// String returns the string representation of flag store type
func (f FlagStoreType) String() string {
	switch f {
	case FlagStoreTypeMemory:
		return "memory"
	case FlagStoreTypeRedis:
		return "redis"
	case FlagStoreTypeDatabase:
		return "database"
	default:
		return "unknown"
	}
}

func (f FlagStoreType) IsValid() bool {
	return f == FlagStoreTypeMemory || f == FlagStoreTypeRedis || f == FlagStoreTypeDatabase
}

// FlagStoreTypeFromString converts string to FlagStoreType enum
func FlagStoreTypeFromString(s string) FlagStoreType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return FlagStoreTypeMemory
	case "redis":
		return FlagStoreTypeRedis
	case "database", "postgres":
		return FlagStoreTypeDatabase
	default:
		return FlagStoreTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (f *FlagStoreType) UnmarshalText(text []byte) error {
	*f = FlagStoreTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (f FlagStoreType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

type FlagStoreConfig struct {
	Type  FlagStoreType `envconfig:"FLAG_STORE_TYPE" default:"memory"`
	Redis RedisConfig   `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weatherdash"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Dashboard.Validate(); err != nil {
		return err
	}
	if err := c.FlagStore.Validate(); err != nil {
		return err
	}
	if c.FlagStore.Type == FlagStoreTypeDatabase {
		return c.Database.Validate()
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY must be configured", nil)
	}
	if !isHTTPURL(w.BaseURL) {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	if !isHTTPURL(w.GeoBaseURL) {
		return errors.NewConfigurationError("OPENWEATHERMAP_GEO_BASE_URL must start with http:// or https://", nil)
	}
	if w.RequestTimeoutSeconds < 1 || w.RequestTimeoutSeconds > maxRequestTimeoutSecs {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	if w.RateLimitRPS <= 0 {
		return errors.NewConfigurationError("WEATHER_RATE_LIMIT_RPS must be positive", nil)
	}
	if w.RateLimitBurst < 1 {
		return errors.NewConfigurationError("WEATHER_RATE_LIMIT_BURST must be at least 1", nil)
	}
	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when WEATHER_ENABLE_LOGGING is set", nil)
	}
	return nil
}

func (d *DashboardConfig) Validate() error {
	if d.PageSize < 1 || d.PageSize > maxPageSize {
		return errors.NewConfigurationError("DASHBOARD_PAGE_SIZE must be between 1 and 100", nil)
	}
	if d.GeolocationTimeoutMS < 1 || d.GeolocationTimeoutMS > maxGeolocationTimeout {
		return errors.NewConfigurationError("GEOLOCATION_TIMEOUT_MS must be between 1 and 60000", nil)
	}
	if strings.TrimSpace(d.SessionCookieName) == "" {
		return errors.NewConfigurationError("SESSION_COOKIE_NAME cannot be empty", nil)
	}
	if d.SessionIdleTimeoutMinutes < 1 {
		return errors.NewConfigurationError("SESSION_IDLE_TIMEOUT_MINUTES must be positive", nil)
	}
	if d.MaxSessions < 1 {
		return errors.NewConfigurationError("MAX_SESSIONS must be positive", nil)
	}
	return nil
}

func (f *FlagStoreConfig) Validate() error {
	if !f.Type.IsValid() {
		return errors.NewConfigurationError("FLAG_STORE_TYPE must be one of: memory, redis, database", nil)
	}
	if f.Type == FlagStoreTypeRedis {
		return f.Redis.Validate()
	}
	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using the Redis flag store", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func isHTTPURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
