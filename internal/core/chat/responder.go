package chat

import (
	"fmt"
	"strings"

	"weatherdash.app/internal/core/forecast"
)

const (
	NotWeatherRelatedMessage = "I apologize, but I'm specialized in weather-related queries. " +
		"Is there any specific weather information you'd like to know about a particular city?"
	FetchFailedMessage = "I apologize, but I'm having trouble retrieving the weather data for that city. " +
		"Could you please try again or ask about a different city?"
	NoForecastMessage = "I don't have any weather data yet. Which city would you like to know about?"
)

// ComposeResponse fills the fixed sentence templates from already-fetched daily samples.
// Order: intro, current conditions, [temperature range], [rain], [wind], closing question.
// The first daily sample is "current"; the outlook window is daily[1:6].
// Optional clauses are skipped when the window is empty.
func ComposeResponse(text, city string, daily forecast.List, mode forecast.UnitMode) string {
	if len(daily) == 0 {
		return NoForecastMessage
	}

	current := daily[0]
	window := daily[1:min(len(daily), 6)]

	var b strings.Builder
	fmt.Fprintf(&b, "Let me provide you with the weather information for %s. ", city)
	fmt.Fprintf(&b, "Currently, it's %s with %s. ",
		forecast.FormatTemperature(current.Temperature, mode), current.ConditionDescription)

	if len(window) > 0 && mentions(text, "temperature") {
		low, high := temperatureRange(window)
		fmt.Fprintf(&b, "The temperature ranges from %s to %s over the next few days. ",
			forecast.FormatTemperature(low, mode), forecast.FormatTemperature(high, mode))
	}

	if len(window) > 0 && mentions(text, "rain", "umbrella") {
		rainy := 0
		for _, e := range window {
			if e.IsRainy() {
				rainy++
			}
		}
		if rainy > 0 {
			fmt.Fprintf(&b, "There's a chance of rain on %d of the next %d days, so you might want to keep an umbrella handy. ",
				rainy, len(window))
		} else {
			fmt.Fprintf(&b, "Good news! No rain is expected in the next %d days. ", len(window))
		}
	}

	if len(window) > 0 && mentions(text, "wind") {
		total := 0.0
		for _, e := range window {
			total += e.WindSpeed
		}
		fmt.Fprintf(&b, "The average wind speed for the upcoming days is %s. ",
			forecast.FormatWindSpeed(total/float64(len(window)), mode))
	}

	fmt.Fprintf(&b, "Is there anything specific about the weather in %s you'd like to know more about?", city)
	return b.String()
}

func temperatureRange(window forecast.List) (low, high float64) {
	low, high = window[0].TempMin, window[0].TempMax
	for _, e := range window[1:] {
		low = min(low, e.TempMin)
		high = max(high, e.TempMax)
	}
	return low, high
}
