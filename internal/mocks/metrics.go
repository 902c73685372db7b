package mocks

import (
	"sync"
	"time"
)

// Metrics counts metric calls by name so tests can assert on them
type Metrics struct {
	mu             sync.Mutex
	Commands       map[string]int
	Failures       map[string]int
	Stale          map[string]int
	Upstream       map[string]int
	RateLimited    map[string]int
	ActiveSessions int
}

func NewMetrics() *Metrics {
	return &Metrics{
		Commands:    map[string]int{},
		Failures:    map[string]int{},
		Stale:       map[string]int{},
		Upstream:    map[string]int{},
		RateLimited: map[string]int{},
	}
}

func (m *Metrics) RecordUpstreamCall(endpoint string, success bool, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Upstream[endpoint]++
}

func (m *Metrics) RecordRateLimited(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimited[endpoint]++
}

func (m *Metrics) RecordCommand(command string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands[command]++
	if !success {
		m.Failures[command]++
	}
}

func (m *Metrics) RecordStaleResult(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stale[command]++
}

func (m *Metrics) SetActiveSessions(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ActiveSessions = count
}

// StaleCount returns the number of discarded results for command
func (m *Metrics) StaleCount(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Stale[command]
}
