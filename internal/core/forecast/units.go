package forecast

import (
	"fmt"
	"strings"
)

// UnitMode selects how canonical measurements are displayed
type UnitMode string

const (
	UnitMetric   UnitMode = "metric"
	UnitImperial UnitMode = "imperial"
)

const mpsToMph = 2.237

// ParseUnitMode maps a stored flag value to a unit mode; anything unknown is metric
func ParseUnitMode(value string) UnitMode {
	if strings.EqualFold(strings.TrimSpace(value), string(UnitImperial)) {
		return UnitImperial
	}
	return UnitMetric
}

// Toggle flips between metric and imperial
func (m UnitMode) Toggle() UnitMode {
	if m == UnitImperial {
		return UnitMetric
	}
	return UnitImperial
}

func (m UnitMode) String() string {
	if m == UnitImperial {
		return string(UnitImperial)
	}
	return string(UnitMetric)
}

// ToggleLabel is the text of the unit switch button
func (m UnitMode) ToggleLabel() string {
	if m == UnitImperial {
		return "°F / °C"
	}
	return "°C / °F"
}

// ToDisplayTemperature converts canonical °C to the display unit. No rounding.
func ToDisplayTemperature(celsius float64, mode UnitMode) float64 {
	if mode == UnitImperial {
		return celsius*9/5 + 32
	}
	return celsius
}

// FromDisplayTemperature inverts ToDisplayTemperature
func FromDisplayTemperature(value float64, mode UnitMode) float64 {
	if mode == UnitImperial {
		return (value - 32) * 5 / 9
	}
	return value
}

// ToDisplayWindSpeed converts canonical m/s to the display unit. Input must be canonical.
func ToDisplayWindSpeed(metersPerSecond float64, mode UnitMode) float64 {
	if mode == UnitImperial {
		return metersPerSecond * mpsToMph
	}
	return metersPerSecond
}

// FromDisplayWindSpeed inverts ToDisplayWindSpeed
func FromDisplayWindSpeed(value float64, mode UnitMode) float64 {
	if mode == UnitImperial {
		return value / mpsToMph
	}
	return value
}

func TemperatureLabel(mode UnitMode) string {
	if mode == UnitImperial {
		return "°F"
	}
	return "°C"
}

func WindSpeedLabel(mode UnitMode) string {
	if mode == UnitImperial {
		return "mph"
	}
	return "m/s"
}

// FormatTemperature renders a canonical temperature with one decimal, e.g. "21.3°C"
func FormatTemperature(celsius float64, mode UnitMode) string {
	return fmt.Sprintf("%.1f%s", ToDisplayTemperature(celsius, mode), TemperatureLabel(mode))
}

// FormatWindSpeed renders a canonical wind speed with one decimal, e.g. "4.5 mph"
func FormatWindSpeed(metersPerSecond float64, mode UnitMode) string {
	return fmt.Sprintf("%.1f %s", ToDisplayWindSpeed(metersPerSecond, mode), WindSpeedLabel(mode))
}
