package dashboard

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"weatherdash.app/internal/core/chat"
	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
	"weatherdash.app/pkg/validation"
)

// Command names used for logging and metrics
const (
	CommandSearch  = "search"
	CommandLocate  = "locate"
	CommandChat    = "chat"
	CommandRestore = "restore"
)

// Session owns the whole mutable state of one dashboard: the table store over
// every 3-hour entry, the daily samples behind the card, charts and chat,
// display preferences and the transcript. Network calls run outside the lock;
// overlapping fetches resolve last-request-wins by ticket.
type Session struct {
	id      string
	client  ports.WeatherClient
	flags   ports.FlagStore
	logger  ports.Logger
	metrics ports.MetricsCollector
	router  *chat.Router

	mu         sync.Mutex
	store      *forecast.Store
	unit       forecast.UnitMode
	darkMode   bool
	city       string
	daily      forecast.List
	transcript []ChatTurn
	issued     uint64
	resolved   uint64
}

type SessionDependencies struct {
	ID            string
	WeatherClient ports.WeatherClient
	FlagStore     ports.FlagStore
	Logger        ports.Logger
	Metrics       ports.MetricsCollector
	PageSize      int
}

func NewSession(deps SessionDependencies) (*Session, error) {
	if deps.ID == "" {
		return nil, errors.NewValidationError("session id is required")
	}
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

	s := &Session{
		id:         deps.ID,
		client:     deps.WeatherClient,
		flags:      deps.FlagStore,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		store:      forecast.NewStore(deps.PageSize),
		unit:       forecast.UnitMetric,
		transcript: []ChatTurn{},
	}

	router, err := chat.NewRouter(chat.RouterDependencies{Fetcher: s, Logger: deps.Logger})
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// Restore loads the persisted flags and re-runs the last search, if any.
// A failed restore search is logged and leaves the session empty.
func (s *Session) Restore(ctx context.Context) {
	if unit, ok := s.readFlag(ctx, ports.FlagTemperatureUnit); ok {
		s.mu.Lock()
		s.unit = forecast.ParseUnitMode(unit)
		s.mu.Unlock()
	}
	if dark, ok := s.readFlag(ctx, ports.FlagDarkMode); ok {
		s.mu.Lock()
		s.darkMode = dark == "true"
		s.mu.Unlock()
	}

	city, ok := s.readFlag(ctx, ports.FlagLastSearchedCity)
	if !ok || city == "" {
		return
	}
	if err := s.fetch(ctx, CommandRestore, city); err != nil {
		s.logger.Warn("Failed to restore last searched city",
			ports.F("session_id", s.id),
			ports.F("city", city),
			ports.F("error", err.Error()))
	}
}

// Search validates the typed city name and loads its forecast
func (s *Session) Search(ctx context.Context, city string) (*Snapshot, error) {
	city = strings.TrimSpace(city)
	if !validation.IsValidCityName(city) {
		s.metrics.RecordCommand(CommandSearch, false)
		return nil, errors.NewInvalidInputError(errors.MessageInvalidCity)
	}

	if err := s.fetch(ctx, CommandSearch, city); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// LocateByCoordinates resolves the nearest city and loads its forecast
func (s *Session) LocateByCoordinates(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	if !validation.IsValidCoordinates(lat, lon) {
		s.metrics.RecordCommand(CommandLocate, false)
		return nil, errors.NewInvalidInputError("Invalid coordinates.")
	}

	city, err := s.client.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		s.metrics.RecordCommand(CommandLocate, false)
		s.logger.Warn("Reverse geocoding failed",
			ports.F("session_id", s.id),
			ports.F("lat", lat),
			ports.F("lon", lon),
			ports.F("error", err.Error()))
		return nil, err
	}

	if err := s.fetch(ctx, CommandLocate, city); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// ReportGeolocationError converts a client-side position failure into its error
func (s *Session) ReportGeolocationError(code int) error {
	s.metrics.RecordCommand(CommandLocate, false)
	s.logger.Debug("Client geolocation failed",
		ports.F("session_id", s.id),
		ports.F("code", code))
	return GeolocationErrorFromCode(code)
}

// ToggleUnit flips the display unit; stored entries stay canonical
func (s *Session) ToggleUnit(ctx context.Context) *Snapshot {
	s.mu.Lock()
	s.unit = s.unit.Toggle()
	unit := s.unit
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeFlag(ctx, ports.FlagTemperatureUnit, unit.String())
	return snap
}

func (s *Session) ToggleDarkMode(ctx context.Context) *Snapshot {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	dark := s.darkMode
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeFlag(ctx, ports.FlagDarkMode, strconv.FormatBool(dark))
	return snap
}

func (s *Session) ApplySort(order forecast.SortOrder) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ApplySort(order)
	return s.snapshotLocked()
}

func (s *Session) ApplyFilter(kind forecast.FilterKind) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ApplyFilter(kind)
	return s.snapshotLocked()
}

func (s *Session) Page(n int) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Page(n)
	return s.snapshotLocked()
}

func (s *Session) Navigate(nav forecast.Navigation) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Navigate(nav)
	return s.snapshotLocked()
}

// Chat appends the message and the bot reply to the transcript
func (s *Session) Chat(ctx context.Context, text string) (*Snapshot, error) {
	text, ok := validation.TrimAndValidate(text)
	if !ok {
		return nil, errors.NewInvalidInputError("Please enter a message.")
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, ChatTurn{Text: text, Sender: SenderUser})
	current := s.chatContextLocked()
	s.mu.Unlock()

	reply := s.router.Handle(ctx, text, current)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, ChatTurn{Text: reply, Sender: SenderBot})
	return s.snapshotLocked(), nil
}

// LoadCity fetches a city on behalf of the chat; no name validation on this path
func (s *Session) LoadCity(ctx context.Context, city string) (chat.Context, error) {
	if err := s.fetch(ctx, CommandChat, city); err != nil {
		return chat.Context{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatContextLocked(), nil
}

func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Daily returns a copy of the canonical daily samples currently applied
func (s *Session) Daily() forecast.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daily.Clone()
}

func (s *Session) chatContextLocked() chat.Context {
	return chat.Context{City: s.city, Daily: s.daily.Clone(), Mode: s.unit}
}

// fetch loads city and applies it unless a later request has already resolved,
// successfully or not. Stale results and stale failures are dropped without error.
func (s *Session) fetch(ctx context.Context, command, city string) error {
	s.mu.Lock()
	s.issued++
	ticket := s.issued
	s.mu.Unlock()

	result, err := s.client.FetchForecastByCity(ctx, city)

	s.mu.Lock()
	if ticket < s.resolved {
		s.mu.Unlock()
		s.metrics.RecordStaleResult(command)
		s.logger.Debug("Discarding stale forecast result",
			ports.F("session_id", s.id),
			ports.F("city", city),
			ports.F("ticket", ticket))
		return nil
	}

	s.resolved = ticket

	if err != nil {
		s.mu.Unlock()
		s.metrics.RecordCommand(command, false)
		s.logger.Warn("Forecast fetch failed",
			ports.F("session_id", s.id),
			ports.F("command", command),
			ports.F("city", city),
			ports.F("error", err.Error()))
		return err
	}

	name := result.City
	if name == "" {
		name = city
	}
	s.city = name
	s.daily = forecast.ReduceToDailySamples(result.Entries)
	s.store.Seed(result.Entries)
	s.mu.Unlock()

	s.metrics.RecordCommand(command, true)
	s.logger.Info("Forecast applied",
		ports.F("session_id", s.id),
		ports.F("command", command),
		ports.F("city", name),
		ports.F("entries", len(result.Entries)))

	s.writeFlag(ctx, ports.FlagLastSearchedCity, name)
	return nil
}

// Flag persistence is best effort: failures are logged, never surfaced.
func (s *Session) readFlag(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.flags.Get(ctx, s.id, key)
	if err != nil {
		s.logger.Warn("Failed to read session flag",
			ports.F("session_id", s.id),
			ports.F("key", key),
			ports.F("error", err.Error()))
		return "", false
	}
	return value, ok
}

func (s *Session) writeFlag(ctx context.Context, key, value string) {
	if err := s.flags.Set(ctx, s.id, key, value); err != nil {
		s.logger.Warn("Failed to persist session flag",
			ports.F("session_id", s.id),
			ports.F("key", key),
			ports.F("error", err.Error()))
	}
}
