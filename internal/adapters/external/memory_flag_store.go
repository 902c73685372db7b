package external

import (
	"context"
	"sync"

	"weatherdash.app/pkg/errors"
)

// MemoryFlagStore keeps session flags in process memory; they survive page
// reloads but not a server restart.
type MemoryFlagStore struct {
	data  map[string]map[string]string
	mutex sync.RWMutex
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{
		data: make(map[string]map[string]string),
	}
}

func (s *MemoryFlagStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if err := validateFlagKey(sessionID, key); err != nil {
		return "", false, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	value, ok := s.data[sessionID][key]
	return value, ok, nil
}

func (s *MemoryFlagStore) Set(ctx context.Context, sessionID, key, value string) error {
	if err := validateFlagKey(sessionID, key); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	flags, ok := s.data[sessionID]
	if !ok {
		flags = make(map[string]string)
		s.data[sessionID] = flags
	}
	flags[key] = value
	return nil
}

func (s *MemoryFlagStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := validateFlagKey(sessionID, key); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.data[sessionID], key)
	if len(s.data[sessionID]) == 0 {
		delete(s.data, sessionID)
	}
	return nil
}

func validateFlagKey(sessionID, key string) error {
	if sessionID == "" {
		return errors.NewValidationError("session id cannot be empty")
	}
	if key == "" {
		return errors.NewValidationError("flag key cannot be empty")
	}
	return nil
}
