package external

import (
	"fmt"

	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

type FlagStoreFactory struct{}

func NewFlagStoreFactory() *FlagStoreFactory {
	return &FlagStoreFactory{}
}

// CreateFlagStore builds the configured store. The database store is owned by the
// database adapter, so it is passed in and only required for the database type.
func (f *FlagStoreFactory) CreateFlagStore(cfg *config.FlagStoreConfig, database ports.FlagStore) (ports.FlagStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("flag store config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.FlagStoreTypeMemory:
		return NewMemoryFlagStore(), nil
	case config.FlagStoreTypeRedis:
		store, err := NewRedisFlagStore(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.FlagStoreTypeDatabase:
		if database == nil {
			return nil, errors.NewConfigurationError("database flag store requires a database connection", nil)
		}
		return database, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported flag store type: %s", cfg.Type.String()), nil)
	}
}
