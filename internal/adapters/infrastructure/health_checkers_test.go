package infrastructure

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weatherdash.app/internal/adapters/database"
	"weatherdash.app/internal/adapters/external"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
)

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return fmt.Errorf("connection refused") }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Weather: config.WeatherConfig{
			APIKey:                "test-key",
			BaseURL:               "http://owm.local/data/2.5",
			GeoBaseURL:            "http://owm.local/geo/1.0",
			RequestTimeoutSeconds: 10,
			RateLimitRPS:          2,
			RateLimitBurst:        4,
		},
		Dashboard: config.DashboardConfig{
			PageSize:                  10,
			GeolocationTimeoutMS:      5000,
			SessionCookieName:         "weatherdash_session",
			SessionIdleTimeoutMinutes: 30,
			MaxSessions:               100,
		},
		FlagStore: config.FlagStoreConfig{
			Type:  config.FlagStoreTypeRedis,
			Redis: config.RedisConfig{Addr: "localhost:6379", DialTimeout: 5},
		},
	}
}

func TestConfigProviderAdapter(t *testing.T) {
	provider := NewConfigProviderAdapter(testConfig())

	weather := provider.GetWeatherConfig()
	assert.Equal(t, "test-key", weather.APIKey)
	assert.Equal(t, 10*time.Second, weather.RequestTimeout)
	assert.Equal(t, 2.0, weather.RateLimitRPS)

	dashboard := provider.GetDashboardConfig()
	assert.Equal(t, 10, dashboard.PageSize)
	assert.Equal(t, 5*time.Second, dashboard.GeolocationTimeout)
	assert.Equal(t, "weatherdash_session", dashboard.SessionCookieName)

	flags := provider.GetFlagStoreConfig()
	assert.Equal(t, "redis", flags.Type)
	assert.Equal(t, "localhost:6379", flags.Redis.Addr)

	assert.Equal(t, 8080, provider.GetServerConfig().Port)
}

func TestDatabaseHealthChecker(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	repo := database.NewFlagRepositoryAdapter(db)

	status := NewDatabaseHealthChecker(db, repo).Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Contains(t, status.Error, "session_flags")

	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, repo.Set(context.Background(), "session-a", ports.FlagLastSearchedCity, "Oslo"))

	status = NewDatabaseHealthChecker(db, repo).Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, int64(1), status.Details["persistedSessions"])

	status = NewDatabaseHealthChecker(nil, nil).Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
}

func TestFlagStoreHealthChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := external.NewRedisFlagStore(&config.RedisConfig{Addr: mr.Addr(), DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tests := []struct {
		name     string
		checker  *FlagStoreHealthChecker
		expected string
	}{
		{"Memory", NewFlagStoreHealthChecker("memory", nil), "healthy"},
		{"Redis", NewFlagStoreHealthChecker("redis", store), "healthy"},
		{"Unreachable", NewFlagStoreHealthChecker("redis", failingPinger{}), "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.checker.Check(context.Background())
			assert.Equal(t, tt.expected, status.Status)
			assert.Equal(t, "flagStore", status.Component)
		})
	}
}

func TestWeatherAPIHealthChecker(t *testing.T) {
	healthy := NewWeatherAPIHealthChecker(ports.WeatherConfig{APIKey: "k"}).Check(context.Background())
	assert.Equal(t, "healthy", healthy.Status)

	missing := NewWeatherAPIHealthChecker(ports.WeatherConfig{}).Check(context.Background())
	assert.Equal(t, "unhealthy", missing.Status)
	assert.Equal(t, "api key is not configured", missing.Error)
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	provider := NewConfigProviderAdapter(testConfig())
	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		FlagStoreChecker:  NewFlagStoreHealthChecker("memory", nil),
		WeatherAPIChecker: NewWeatherAPIHealthChecker(provider.GetWeatherConfig()),
		ConfigProvider:    provider,
	})

	results := checker.CheckAll(context.Background())
	assert.Len(t, results, 3)
	assert.NotContains(t, results, "database")
	assert.Equal(t, int64(5000), results["config"].Details["geolocationTimeoutMs"])
	assert.True(t, Healthy(results))

	results["flagStore"] = ports.HealthStatus{Status: "unhealthy"}
	assert.False(t, Healthy(results))
}
