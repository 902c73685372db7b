package ports

import "context"

// Persisted session flag keys
const (
	FlagLastSearchedCity = "lastSearchedCity"
	FlagTemperatureUnit  = "temperatureUnit"
	FlagDarkMode         = "darkMode"
)

// FlagStore persists the small set of per-session preference flags.
// Get returns ok=false for a flag that was never set.
type FlagStore interface {
	Get(ctx context.Context, sessionID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
}
