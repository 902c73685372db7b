package external

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// RateLimitedWeatherClient keeps upstream calls within the API key's quota.
// Both endpoints share one limiter because the quota is per key.
type RateLimitedWeatherClient struct {
	client  ports.WeatherClient
	limiter *rate.Limiter
	metrics ports.MetricsCollector
}

// NewRateLimitedWeatherClient allows rps requests per second (fractional allowed) with the given burst
func NewRateLimitedWeatherClient(client ports.WeatherClient, rps float64, burst int, metrics ports.MetricsCollector) *RateLimitedWeatherClient {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedWeatherClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		metrics: metrics,
	}
}

func (r *RateLimitedWeatherClient) FetchForecastByCity(ctx context.Context, city string) (*forecast.CityForecast, error) {
	if err := r.wait(ctx, endpointForecast); err != nil {
		return nil, err
	}
	return r.client.FetchForecastByCity(ctx, city)
}

func (r *RateLimitedWeatherClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if err := r.wait(ctx, endpointReverse); err != nil {
		return "", err
	}
	return r.client.ReverseGeocode(ctx, lat, lon)
}

// wait blocks for a token; a cancelled or too-short context becomes a network error
func (r *RateLimitedWeatherClient) wait(ctx context.Context, endpoint string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.metrics.RecordRateLimited(endpoint)
		return errors.NewNetworkError("", fmt.Errorf("rate limit wait canceled: %w", err))
	}
	return nil
}
