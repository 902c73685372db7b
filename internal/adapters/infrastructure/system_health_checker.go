package infrastructure

import (
	"context"

	"weatherdash.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker   ports.HealthChecker
	FlagStoreChecker  ports.HealthChecker
	WeatherAPIChecker ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker; nil checkers are skipped
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.DatabaseChecker != nil {
		checkers["database"] = config.DatabaseChecker
	}
	if config.FlagStoreChecker != nil {
		checkers["flagStore"] = config.FlagStoreChecker
	}
	if config.WeatherAPIChecker != nil {
		checkers["openWeatherMap"] = config.WeatherAPIChecker
	}

	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}

	if s.configProvider != nil {
		dashboard := s.configProvider.GetDashboardConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    "healthy",
			Details: map[string]interface{}{
				"pageSize":             dashboard.PageSize,
				"geolocationTimeoutMs": dashboard.GeolocationTimeout.Milliseconds(),
				"flagStore":            s.configProvider.GetFlagStoreConfig().Type,
			},
		}
	}

	return results
}

// Healthy reports whether every component in results is healthy
func Healthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if status.Status != "healthy" {
			return false
		}
	}
	return true
}
