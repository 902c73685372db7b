package ports

import "time"

// WeatherConfig represents upstream client configuration
type WeatherConfig struct {
	APIKey         string
	BaseURL        string
	GeoBaseURL     string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	EnableLogging  bool
	LogFilePath    string
}

// DashboardConfig represents session behavior configuration
type DashboardConfig struct {
	PageSize           int
	GeolocationTimeout time.Duration
	SessionCookieName  string
	SessionIdleTimeout time.Duration
	MaxSessions        int
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// FlagStoreConfig represents flag persistence configuration
type FlagStoreConfig struct {
	Type  string
	Redis RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetDashboardConfig() DashboardConfig
	GetServerConfig() ServerConfig
	GetDatabaseConfig() DatabaseConfig
	GetFlagStoreConfig() FlagStoreConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordUpstreamCall(endpoint string, success bool, duration time.Duration)
	RecordRateLimited(endpoint string)
	RecordCommand(command string, success bool)
	RecordStaleResult(command string)
	SetActiveSessions(count int)
}
