package external

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/pkg/errors"
)

func TestWeatherClientLoggingDecorator_Success(t *testing.T) {
	client := mocks.NewWeatherClient(t)
	logger := mocks.NewLogger()
	client.On("FetchForecastByCity", mock.Anything, "Paris").
		Return(&forecast.CityForecast{City: "Paris", Entries: forecast.List{{Temperature: 12}}}, nil).Once()

	decorated := NewWeatherClientLoggingDecorator(client, logger)
	result, err := decorated.FetchForecastByCity(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, "Paris", result.City)

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Forecast request started", entries[0].Message)
	assert.Equal(t, "Forecast request completed", entries[1].Message)
	assert.Equal(t, 1, entries[1].Fields["entries"])
	assert.Contains(t, entries[1].Fields, "duration_ms")
}

func TestWeatherClientLoggingDecorator_Error(t *testing.T) {
	client := mocks.NewWeatherClient(t)
	logger := mocks.NewLogger()
	client.On("ReverseGeocode", mock.Anything, 1.0, 2.0).
		Return("", errors.NewNoLocationFoundError(errors.MessageNoLocationFound)).Once()

	decorated := NewWeatherClientLoggingDecorator(client, logger)
	_, err := decorated.ReverseGeocode(context.Background(), 1, 2)

	assert.True(t, errors.IsNoLocationFoundError(err))
	assert.True(t, logger.HasMessage("error", "Reverse geocode request failed"))
}

func TestRateLimitedWeatherClient_PassesThrough(t *testing.T) {
	client := mocks.NewWeatherClient(t)
	client.On("FetchForecastByCity", mock.Anything, "Paris").Return(&forecast.CityForecast{City: "Paris"}, nil).Once()
	client.On("ReverseGeocode", mock.Anything, 1.0, 2.0).Return("Lyon", nil).Once()

	limited := NewRateLimitedWeatherClient(client, 100, 2, mocks.NewMetrics())

	result, err := limited.FetchForecastByCity(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", result.City)

	city, err := limited.ReverseGeocode(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Lyon", city)
}

func TestRateLimitedWeatherClient_ExhaustedBudget(t *testing.T) {
	client := mocks.NewWeatherClient(t)
	client.On("FetchForecastByCity", mock.Anything, "Paris").Return(&forecast.CityForecast{City: "Paris"}, nil).Once()
	metrics := mocks.NewMetrics()

	// One token, refilled every 100 seconds
	limited := NewRateLimitedWeatherClient(client, 0.01, 1, metrics)

	_, err := limited.FetchForecastByCity(context.Background(), "Paris")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = limited.FetchForecastByCity(ctx, "Paris")

	assert.True(t, errors.IsNetworkError(err), fmt.Sprint(err))
	assert.Equal(t, 1, metrics.RateLimited[endpointForecast])
}
