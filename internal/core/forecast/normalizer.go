package forecast

const (
	// EntriesPerDay is the number of 3-hour steps the upstream API returns per day
	EntriesPerDay = 8
	// MaxDailySamples caps the summary at five days
	MaxDailySamples = 5
)

// ReduceToDailySamples picks every EntriesPerDay-th entry starting at index 0,
// keeping at most MaxDailySamples. Input order is preserved and the input is not modified.
func ReduceToDailySamples(raw List) List {
	if len(raw) == 0 {
		return List{}
	}

	samples := make(List, 0, MaxDailySamples)
	for i := 0; i < len(raw) && len(samples) < MaxDailySamples; i += EntriesPerDay {
		samples = append(samples, raw[i])
	}
	return samples
}
