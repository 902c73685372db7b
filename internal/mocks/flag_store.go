package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// FlagStore is a testify mock of ports.FlagStore
type FlagStore struct {
	mock.Mock
}

// NewFlagStore creates a mock that asserts its expectations on test cleanup
func NewFlagStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *FlagStore {
	m := &FlagStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FlagStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	args := m.Called(ctx, sessionID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *FlagStore) Set(ctx context.Context, sessionID, key, value string) error {
	return m.Called(ctx, sessionID, key, value).Error(0)
}

func (m *FlagStore) Delete(ctx context.Context, sessionID, key string) error {
	return m.Called(ctx, sessionID, key).Error(0)
}
