package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// Manager keeps one Session per session id. Sessions idle for longer than
// IdleTimeout are dropped by the cleanup loop, and once MaxSessions is reached
// opening a new one evicts the least recently used. Persisted flags outlive
// eviction, so an evicted id is restored on its next request.
type Manager struct {
	deps ManagerDependencies
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*managedSession

	stopCh   chan struct{}
	stopOnce sync.Once
}

type managedSession struct {
	session  *Session
	lastSeen time.Time
}

// ManagerDependencies configures a Manager. IdleTimeout <= 0 disables idle
// eviction, MaxSessions <= 0 removes the cap and a nil Clock means time.Now.
type ManagerDependencies struct {
	WeatherClient ports.WeatherClient
	FlagStore     ports.FlagStore
	Logger        ports.Logger
	Metrics       ports.MetricsCollector
	PageSize      int
	IdleTimeout   time.Duration
	MaxSessions   int
	Clock         func() time.Time
}

func NewManager(deps ManagerDependencies) (*Manager, error) {
	if deps.WeatherClient == nil {
		return nil, errors.NewValidationError("weather client is required")
	}
	if deps.FlagStore == nil {
		return nil, errors.NewValidationError("flag store is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	return &Manager{
		deps:     deps,
		now:      now,
		sessions: make(map[string]*managedSession),
		stopCh:   make(chan struct{}),
	}, nil
}

// Open returns the session for id, creating it when unknown.
// A malformed or empty id gets a fresh one. New sessions restore their
// persisted flags, so a known id survives a server restart or eviction.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	now := m.now()

	m.mu.Lock()
	if entry, ok := m.sessions[id]; ok {
		entry.lastSeen = now
		m.mu.Unlock()
		return entry.session, nil
	}

	session, err := NewSession(SessionDependencies{
		ID:            id,
		WeatherClient: m.deps.WeatherClient,
		FlagStore:     m.deps.FlagStore,
		Logger:        m.deps.Logger,
		Metrics:       m.deps.Metrics,
		PageSize:      m.deps.PageSize,
	})
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	evicted := 0
	if m.deps.MaxSessions > 0 && len(m.sessions) >= m.deps.MaxSessions {
		evicted = m.evictIdleLocked(now)
		for len(m.sessions) >= m.deps.MaxSessions {
			m.evictOldestLocked()
			evicted++
		}
	}
	m.sessions[id] = &managedSession{session: session, lastSeen: now}
	count := len(m.sessions)
	m.mu.Unlock()

	m.deps.Metrics.SetActiveSessions(count)
	if evicted > 0 {
		m.deps.Logger.Debug("Sessions evicted",
			ports.F("evicted", evicted),
			ports.F("active", count))
	}
	m.deps.Logger.Debug("Session opened", ports.F("session_id", id))

	session.Restore(ctx)
	return session, nil
}

// Get returns an already opened session without touching its last access time
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// EvictIdle drops every session not opened within IdleTimeout and returns how many went
func (m *Manager) EvictIdle() int {
	m.mu.Lock()
	evicted := m.evictIdleLocked(m.now())
	count := len(m.sessions)
	m.mu.Unlock()

	if evicted > 0 {
		m.deps.Metrics.SetActiveSessions(count)
		m.deps.Logger.Debug("Idle sessions evicted",
			ports.F("evicted", evicted),
			ports.F("active", count))
	}
	return evicted
}

// StartCleanup runs EvictIdle every interval until Stop is called
func (m *Manager) StartCleanup(interval time.Duration) {
	if interval <= 0 || m.deps.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				m.EvictIdle()
			case <-m.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}

func (m *Manager) evictIdleLocked(now time.Time) int {
	if m.deps.IdleTimeout <= 0 {
		return 0
	}
	evicted := 0
	for id, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > m.deps.IdleTimeout {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, entry := range m.sessions {
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID, oldest = id, entry.lastSeen
		}
	}
	delete(m.sessions, oldestID)
}
