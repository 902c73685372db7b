package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplayTemperature(t *testing.T) {
	tests := []struct {
		name     string
		celsius  float64
		mode     UnitMode
		expected float64
	}{
		{"MetricIdentity", 21.5, UnitMetric, 21.5},
		{"FreezingImperial", 0, UnitImperial, 32},
		{"BoilingImperial", 100, UnitImperial, 212},
		{"CrossoverImperial", -40, UnitImperial, -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ToDisplayTemperature(tt.celsius, tt.mode), 1e-9)
		})
	}
}

func TestTemperature_RoundTripIsLossless(t *testing.T) {
	for _, celsius := range []float64{-273.15, -40, -12.34, 0, 0.1, 17.777, 36.6, 1e6} {
		display := ToDisplayTemperature(celsius, UnitImperial)
		assert.InDelta(t, celsius, FromDisplayTemperature(display, UnitImperial), 1e-9)
		assert.Equal(t, celsius, FromDisplayTemperature(ToDisplayTemperature(celsius, UnitMetric), UnitMetric))
	}
}

func TestToDisplayWindSpeed(t *testing.T) {
	assert.Equal(t, 4.2, ToDisplayWindSpeed(4.2, UnitMetric))
	assert.InDelta(t, 22.37, ToDisplayWindSpeed(10, UnitImperial), 1e-9)

	for _, mps := range []float64{0, 0.3, 4.2, 33.3} {
		mph := ToDisplayWindSpeed(mps, UnitImperial)
		assert.InDelta(t, mps, FromDisplayWindSpeed(mph, UnitImperial), 1e-9)
	}
}

func TestUnitLabelsAndFormatting(t *testing.T) {
	assert.Equal(t, "°C", TemperatureLabel(UnitMetric))
	assert.Equal(t, "°F", TemperatureLabel(UnitImperial))
	assert.Equal(t, "m/s", WindSpeedLabel(UnitMetric))
	assert.Equal(t, "mph", WindSpeedLabel(UnitImperial))

	assert.Equal(t, "21.3°C", FormatTemperature(21.26, UnitMetric))
	assert.Equal(t, "70.3°F", FormatTemperature(21.26, UnitImperial))
	assert.Equal(t, "3.5 m/s", FormatWindSpeed(3.5, UnitMetric))
	assert.Equal(t, "7.8 mph", FormatWindSpeed(3.5, UnitImperial))
}

func TestUnitMode_ParseAndToggle(t *testing.T) {
	assert.Equal(t, UnitImperial, ParseUnitMode("imperial"))
	assert.Equal(t, UnitImperial, ParseUnitMode(" Imperial "))
	assert.Equal(t, UnitMetric, ParseUnitMode(""))
	assert.Equal(t, UnitMetric, ParseUnitMode("kelvin"))

	assert.Equal(t, UnitImperial, UnitMetric.Toggle())
	assert.Equal(t, UnitMetric, UnitImperial.Toggle())
	assert.Equal(t, UnitMetric, UnitMetric.Toggle().Toggle())
	assert.Equal(t, "°C / °F", UnitMetric.ToggleLabel())
	assert.Equal(t, "°F / °C", UnitImperial.ToggleLabel())
	assert.Equal(t, "metric", UnitMode("bogus").String())
}

func TestToDisplay_TotalOverFiniteInputs(t *testing.T) {
	big := math.MaxFloat64 / 4
	assert.False(t, math.IsNaN(ToDisplayTemperature(big, UnitImperial)))
	assert.False(t, math.IsNaN(ToDisplayWindSpeed(-big, UnitImperial)))
}
