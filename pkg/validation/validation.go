package validation

import (
	"regexp"
	"strings"
)

// Letters, spaces and hyphens only.
var cityNameRegex = regexp.MustCompile(`^[a-zA-Z\s-]+$`)

// IsValidCityName validates a city name typed into the search box
func IsValidCityName(city string) bool {
	return cityNameRegex.MatchString(strings.TrimSpace(city))
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidCoordinates reports whether lat/lon are inside WGS84 bounds
func IsValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
