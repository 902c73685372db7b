package ports

import (
	"context"

	"weatherdash.app/internal/core/forecast"
)

// WeatherClient defines the contract for the upstream forecast service.
// Calls are single-shot; failures are classified as pkg/errors user-action errors.
type WeatherClient interface {
	// FetchForecastByCity returns the raw 3-hour series in canonical metric units
	FetchForecastByCity(ctx context.Context, city string) (*forecast.CityForecast, error)
	// ReverseGeocode resolves coordinates to the name of the nearest city
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
