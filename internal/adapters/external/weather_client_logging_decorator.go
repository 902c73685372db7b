package external

import (
	"context"
	"time"

	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/ports"
)

// WeatherClientLoggingDecorator decorates a weather client with structured logging
type WeatherClientLoggingDecorator struct {
	client ports.WeatherClient
	logger ports.Logger
}

func NewWeatherClientLoggingDecorator(client ports.WeatherClient, logger ports.Logger) ports.WeatherClient {
	return &WeatherClientLoggingDecorator{
		client: client,
		logger: logger,
	}
}

func (d *WeatherClientLoggingDecorator) FetchForecastByCity(ctx context.Context, city string) (*forecast.CityForecast, error) {
	d.logger.Info("Forecast request started",
		ports.F("city", city),
		ports.F("event", "request"))

	startTime := time.Now()
	result, err := d.client.FetchForecastByCity(ctx, city)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Forecast request failed",
			ports.F("city", city),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Forecast request completed",
		ports.F("city", city),
		ports.F("resolved_city", result.City),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("entries", len(result.Entries)))

	return result, nil
}

func (d *WeatherClientLoggingDecorator) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	d.logger.Info("Reverse geocode request started",
		ports.F("lat", lat),
		ports.F("lon", lon),
		ports.F("event", "request"))

	startTime := time.Now()
	city, err := d.client.ReverseGeocode(ctx, lat, lon)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Reverse geocode request failed",
			ports.F("lat", lat),
			ports.F("lon", lon),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return "", err
	}

	d.logger.Info("Reverse geocode request completed",
		ports.F("lat", lat),
		ports.F("lon", lon),
		ports.F("city", city),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()))

	return city, nil
}
