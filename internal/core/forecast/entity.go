package forecast

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one 3-hour forecast step. Measurements are always stored in
// canonical metric units (°C, m/s); display conversion happens on read.
type Entry struct {
	Timestamp            time.Time
	Temperature          float64
	FeelsLike            float64
	TempMin              float64
	TempMax              float64
	Humidity             int
	WindSpeed            float64
	ConditionMain        string
	ConditionDescription string
}

// IsRainy reports whether the condition mentions rain, case-insensitively
func (e Entry) IsRainy() bool {
	return strings.Contains(strings.ToLower(e.ConditionMain), "rain")
}

// ConditionKey is the lower-cased condition used to pick a background image
func (e Entry) ConditionKey() string {
	return strings.ToLower(e.ConditionMain)
}

// IsValid validates entry data coming from the provider
func (e Entry) IsValid() error {
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp cannot be zero")
	}
	if e.Temperature < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if e.Humidity < 0 || e.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100")
	}
	if e.WindSpeed < 0 {
		return fmt.Errorf("wind speed cannot be negative")
	}
	return nil
}

// List is an ordered sequence of entries in the order received (chronological)
type List []Entry

// Clone returns an independent copy so that the caller can reorder it freely
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// CityForecast is a parsed forecast payload: the resolved city plus its entries
type CityForecast struct {
	City    string
	Entries List
}
