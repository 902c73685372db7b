package infrastructure

import (
	"context"

	"weatherdash.app/internal/ports"
)

// Pinger is implemented by flag stores backed by a remote service
type Pinger interface {
	Ping(ctx context.Context) error
}

// FlagStoreHealthChecker reports whether the configured flag store is reachable
type FlagStoreHealthChecker struct {
	storeType string
	pinger    Pinger
}

// NewFlagStoreHealthChecker creates a flag store health checker.
// A nil pinger marks an in-process store that is always healthy.
func NewFlagStoreHealthChecker(storeType string, pinger Pinger) *FlagStoreHealthChecker {
	return &FlagStoreHealthChecker{storeType: storeType, pinger: pinger}
}

// Check pings the backing store when there is one
func (f *FlagStoreHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "flagStore",
		Status:    "healthy",
		Details: map[string]interface{}{
			"type": f.storeType,
		},
	}

	if f.pinger == nil {
		return status
	}

	if err := f.pinger.Ping(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
	}
	return status
}

// WeatherAPIHealthChecker reports the upstream client configuration
type WeatherAPIHealthChecker struct {
	config ports.WeatherConfig
}

// NewWeatherAPIHealthChecker creates a new weather API health checker
func NewWeatherAPIHealthChecker(config ports.WeatherConfig) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{config: config}
}

// Check verifies the upstream client is configured; it does not spend quota on a live call
func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "openWeatherMap",
		Status:    "healthy",
		Details: map[string]interface{}{
			"baseURL":    w.config.BaseURL,
			"geoBaseURL": w.config.GeoBaseURL,
			"rateLimit":  w.config.RateLimitRPS,
		},
	}

	if w.config.APIKey == "" {
		status.Status = "unhealthy"
		status.Error = "api key is not configured"
	}
	return status
}
