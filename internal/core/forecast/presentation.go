package forecast

import (
	"fmt"
)

const (
	TemperatureChartTitle = "5-Day Temperature Forecast"
	TrendChartTitle       = "5-Day Temperature Trend"
	ConditionsChartTitle  = "Weather Conditions Distribution"

	// NoRainyDaysNotice is shown when the rain filter leaves nothing to display
	NoRainyDaysNotice = "No rainy days in the forecast."

	tableTimeLayout = "1/2/2006, 3:04:05 PM"
)

// CurrentCard is the current-conditions card
type CurrentCard struct {
	Title           string `json:"title"`
	City            string `json:"city"`
	Description     string `json:"description"`
	Temperature     string `json:"temperature"`
	FeelsLike       string `json:"feels_like"`
	Humidity        string `json:"humidity"`
	WindSpeed       string `json:"wind_speed"`
	BackgroundImage string `json:"background_image"`
}

// Series is one numeric dataset aligned with a chart's labels
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Chart is the renderer input contract: category labels plus aligned series.
// Empty charts must not be drawn.
type Chart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
	Empty  bool     `json:"empty"`
}

// Charts groups the three dashboard charts
type Charts struct {
	Temperature Chart `json:"temperature"`
	Trend       Chart `json:"trend"`
	Conditions  Chart `json:"conditions"`
}

// TableRow is one formatted row of the forecast table
type TableRow struct {
	Time        string `json:"time"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
}

// PageInfo drives the pagination controls
type PageInfo struct {
	Page          int    `json:"page"`
	TotalPages    int    `json:"total_pages"`
	Label         string `json:"label"`
	FirstDisabled bool   `json:"first_disabled"`
	PrevDisabled  bool   `json:"prev_disabled"`
	NextDisabled  bool   `json:"next_disabled"`
	LastDisabled  bool   `json:"last_disabled"`
}

// CurrentConditions builds the weather card for one entry
func CurrentConditions(e Entry, city string, mode UnitMode) CurrentCard {
	return CurrentCard{
		Title:           fmt.Sprintf("Current Weather in %s", city),
		City:            city,
		Description:     e.ConditionDescription,
		Temperature:     FormatTemperature(e.Temperature, mode),
		FeelsLike:       FormatTemperature(e.FeelsLike, mode),
		Humidity:        fmt.Sprintf("%d%%", e.Humidity),
		WindSpeed:       FormatWindSpeed(e.WindSpeed, mode),
		BackgroundImage: fmt.Sprintf("images/%s.gif", e.ConditionKey()),
	}
}

// DashboardCharts builds all three charts from the daily samples
func DashboardCharts(daily List, mode UnitMode) Charts {
	temperature := TemperatureChart(daily, mode)
	trend := TemperatureChart(daily, mode)
	trend.Title = TrendChartTitle
	return Charts{
		Temperature: temperature,
		Trend:       trend,
		Conditions:  ConditionDistribution(daily),
	}
}

// TemperatureChart maps daily samples to weekday labels and display temperatures
func TemperatureChart(daily List, mode UnitMode) Chart {
	labels := make([]string, 0, len(daily))
	values := make([]float64, 0, len(daily))
	for _, e := range daily {
		labels = append(labels, e.Timestamp.Format("Mon"))
		values = append(values, ToDisplayTemperature(e.Temperature, mode))
	}
	return Chart{
		Title:  TemperatureChartTitle,
		Labels: labels,
		Series: []Series{{
			Label:  fmt.Sprintf("Temperature (%s)", TemperatureLabel(mode)),
			Values: values,
		}},
		Empty: len(daily) == 0,
	}
}

// ConditionDistribution counts condition names in first-seen order
func ConditionDistribution(daily List) Chart {
	labels := []string{}
	counts := map[string]int{}
	for _, e := range daily {
		if _, seen := counts[e.ConditionMain]; !seen {
			labels = append(labels, e.ConditionMain)
		}
		counts[e.ConditionMain]++
	}

	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = float64(counts[label])
	}

	return Chart{
		Title:  ConditionsChartTitle,
		Labels: labels,
		Series: []Series{{Label: "Days", Values: values}},
		Empty:  len(daily) == 0,
	}
}

// TableRows formats a page of entries for the table view
func TableRows(page List, mode UnitMode) []TableRow {
	rows := make([]TableRow, 0, len(page))
	for _, e := range page {
		rows = append(rows, TableRow{
			Time:        e.Timestamp.Format(tableTimeLayout),
			Temperature: FormatTemperature(e.Temperature, mode),
			Description: e.ConditionDescription,
			Humidity:    fmt.Sprintf("%d%%", e.Humidity),
			WindSpeed:   FormatWindSpeed(e.WindSpeed, mode),
		})
	}
	return rows
}

// NewPageInfo describes the store's current page position
func NewPageInfo(page, totalPages int) PageInfo {
	return PageInfo{
		Page:          page,
		TotalPages:    totalPages,
		Label:         fmt.Sprintf("Page %d of %d", page, totalPages),
		FirstDisabled: page == 1,
		PrevDisabled:  page == 1,
		NextDisabled:  page == totalPages,
		LastDisabled:  page == totalPages,
	}
}

// HighestTemperatureSummary describes the first entry holding the highest temperature.
// ok is false for an empty list.
func HighestTemperatureSummary(list List, mode UnitMode) (summary string, ok bool) {
	if len(list) == 0 {
		return "", false
	}
	best := list[0]
	for _, e := range list[1:] {
		if e.Temperature > best.Temperature {
			best = e
		}
	}
	return fmt.Sprintf("Highest temperature: %s on %s",
		FormatTemperature(best.Temperature, mode), best.Timestamp.Format("Monday")), true
}
