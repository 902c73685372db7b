package chat

import (
	"regexp"
	"strings"
)

var weatherKeywords = []string{
	"weather", "temperature", "forecast", "rain", "sunny", "cloudy",
	"wind", "humidity", "hot", "cold", "warm", "chilly",
}

// "in Tokyo", "for New York", "at Lyon"; letters and spaces only, first match wins.
var cityPattern = regexp.MustCompile(`(?i)\b(?:in|for|at)\s+([a-z][a-z\s]*)`)

// IsWeatherRelated reports whether any weather keyword occurs in text (case-insensitive substring)
func IsWeatherRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range weatherKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ExtractCity returns the word sequence following the first in/for/at, trimmed.
// ok is false when the pattern does not apply.
func ExtractCity(text string) (city string, ok bool) {
	match := cityPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	city = strings.TrimSpace(match[1])
	return city, city != ""
}

func mentions(text string, words ...string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
