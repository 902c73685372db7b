package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/internal/adapters/external"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/dashboard"
	"weatherdash.app/internal/ports"
	"weatherdash.app/internal/testutil/owmfake"
	"weatherdash.app/pkg/errors"
)

const testAPIKey = "test-api-key"

func testConfig(t *testing.T, upstreamURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Weather: config.WeatherConfig{
			APIKey:                testAPIKey,
			BaseURL:               upstreamURL + owmfake.ForecastPath,
			GeoBaseURL:            upstreamURL + owmfake.GeoPath,
			RequestTimeoutSeconds: 5,
			RateLimitRPS:          100,
			RateLimitBurst:        10,
			EnableLogging:         true,
			LogFilePath:           filepath.Join(t.TempDir(), "logs", "weather_client.log"),
		},
		Dashboard: config.DashboardConfig{
			PageSize:                  10,
			GeolocationTimeoutMS:      5000,
			SessionCookieName:         "weatherdash_session",
			SessionIdleTimeoutMinutes: 30,
			MaxSessions:               100,
		},
		FlagStore: config.FlagStoreConfig{Type: config.FlagStoreTypeMemory},
	}
}

func newFakeUpstream(t *testing.T) *httptest.Server {
	server := httptest.NewServer(owmfake.New(testAPIKey).Handler())
	t.Cleanup(server.Close)
	return server
}

func postSearch(t *testing.T, app *Application, city string, cookie *http.Cookie) *httptest.ResponseRecorder {
	payload, err := json.Marshal(map[string]string{"city": city})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.GetRouter().ServeHTTP(w, req)
	return w
}

func TestNewApplicationWithConfig_MemoryFlagStore(t *testing.T) {
	upstream := newFakeUpstream(t)
	cfg := testConfig(t, upstream.URL)

	app, err := NewApplicationWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.deps.Cleanup() })

	w := postSearch(t, app, "Tokyo", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "Tokyo", snap.City)
	assert.Equal(t, 1, app.Sessions().Len())

	logContent, err := os.ReadFile(cfg.Weather.LogFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(logContent), "Tokyo")
	assert.Contains(t, string(logContent), `"component":"weatherdash"`)

	_, isMemory := app.ports.FlagStore.(*external.MemoryFlagStore)
	assert.True(t, isMemory)

	health := httptest.NewRecorder()
	app.GetRouter().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestNewApplicationWithConfig_RedisFlagStoreRestoresSession(t *testing.T) {
	upstream := newFakeUpstream(t)
	mr := miniredis.RunT(t)

	cfg := testConfig(t, upstream.URL)
	cfg.FlagStore = config.FlagStoreConfig{
		Type:  config.FlagStoreTypeRedis,
		Redis: config.RedisConfig{Addr: mr.Addr(), DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1},
	}

	first, err := NewApplicationWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.deps.Cleanup() })

	w := postSearch(t, first, "London", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == cfg.Dashboard.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	assert.Equal(t, "London", mr.HGet("weatherdash:flags:"+cookie.Value, ports.FlagLastSearchedCity))

	// A second process sharing the redis store picks the session up again
	second, err := NewApplicationWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.deps.Cleanup() })

	session, err := second.Sessions().Open(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "London", session.Snapshot().City)
}

func TestNewApplicationWithConfig_Errors(t *testing.T) {
	upstream := newFakeUpstream(t)

	t.Run("MissingAPIKey", func(t *testing.T) {
		cfg := testConfig(t, upstream.URL)
		cfg.Weather.APIKey = ""

		_, err := NewApplicationWithConfig(cfg)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("RedisUnreachable", func(t *testing.T) {
		cfg := testConfig(t, upstream.URL)
		cfg.FlagStore = config.FlagStoreConfig{
			Type:  config.FlagStoreTypeRedis,
			Redis: config.RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1},
		}

		_, err := NewApplicationWithConfig(cfg)
		assert.True(t, errors.IsDatabaseError(err))
	})
}
