package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"weatherdash.app/internal/core/forecast"
)

// WeatherClient is a testify mock of ports.WeatherClient
type WeatherClient struct {
	mock.Mock
}

// NewWeatherClient creates a mock that asserts its expectations on test cleanup
func NewWeatherClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *WeatherClient {
	m := &WeatherClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *WeatherClient) FetchForecastByCity(ctx context.Context, city string) (*forecast.CityForecast, error) {
	args := m.Called(ctx, city)
	result, _ := args.Get(0).(*forecast.CityForecast)
	return result, args.Error(1)
}

func (m *WeatherClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}
