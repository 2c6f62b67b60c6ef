package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/i474232898/solar-dashboard/internal/store"
)

// ErrEmptyLocation is reported by UpdateLocation for a blank name.
var ErrEmptyLocation = errors.New("location must not be empty")

// State holds the rolling weather history and the most recently fetched
// record. All mutation goes through its actions; failures are captured into
// the error slot and never returned to the caller.
type State struct {
	source    Source
	locator   Locator
	observers []Observer
	logger    zerolog.Logger

	history *store.History[Record]

	mu       sync.RWMutex
	current  *Record
	location string
	inflight int
	errMsg   *string
}

// Option configures a State.
type Option func(*State)

// WithCapacity overrides the history capacity (default store.DefaultCapacity).
func WithCapacity(n int) Option {
	return func(s *State) {
		s.history = store.NewHistory[Record](n)
	}
}

// WithLocator enables UpdateLocation to resolve names and trigger a fetch.
func WithLocator(l Locator) Option {
	return func(s *State) {
		s.locator = l
	}
}

// WithObserver registers observers notified after each action.
func WithObserver(obs ...Observer) Option {
	return func(s *State) {
		s.observers = append(s.observers, obs...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// NewState creates an empty weather state reading from source.
func NewState(source Source, opts ...Option) *State {
	s := &State{
		source:  source,
		history: store.NewHistory[Record](store.DefaultCapacity),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "weather-state").Logger()
	return s
}

// FetchWeatherData requests the weather for a coordinate pair. On success
// the record becomes current and is prepended to the history; on failure
// the error slot is set and everything else is left as it was.
//
// Overlapping calls are not de-duplicated: whichever response lands last
// wins. Cancelling ctx aborts the request and is reported as a failure.
func (s *State) FetchWeatherData(ctx context.Context, lat, lon float64) {
	s.begin()
	defer s.end()
	defer s.recoverPanic()

	rec, err := s.source.FetchWeather(ctx, lat, lon)
	if err != nil {
		s.fail(err)
		return
	}

	s.mu.Lock()
	current := rec
	s.current = &current
	s.history.Prepend(rec)
	n := s.history.Len()
	s.mu.Unlock()

	s.logger.Debug().
		Str("location", rec.Location).
		Float64("lat", lat).
		Float64("lon", lon).
		Int("history", n).
		Msg("stored weather record")

	for _, o := range s.observers {
		o.WeatherStored(rec, n)
	}
}

// UpdateLocation records the active location and, when a Locator is
// configured and the name resolves, fetches the weather for it. Without a
// Locator only the intent is recorded.
func (s *State) UpdateLocation(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.fail(ErrEmptyLocation)
		return
	}

	s.mu.Lock()
	s.location = name
	s.mu.Unlock()

	s.logger.Info().Str("location", name).Msg("location updated")

	if s.locator == nil {
		return
	}

	coords, err := s.locator.Resolve(ctx, name)
	if err != nil {
		s.fail(fmt.Errorf("resolve location %q: %w", name, err))
		return
	}

	s.FetchWeatherData(ctx, coords.Lat(), coords.Lon())
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		WeatherData: s.history.Items(),
		Location:    s.location,
		Loading:     s.inflight > 0,
	}
	if s.current != nil {
		c := *s.current
		snap.CurrentWeather = &c
	}
	if s.errMsg != nil {
		e := *s.errMsg
		snap.Error = &e
	}
	return snap
}

// Loading reports whether a fetch is pending.
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err returns the error slot, empty when there is none.
func (s *State) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.errMsg == nil {
		return ""
	}
	return *s.errMsg
}

func (s *State) begin() {
	s.mu.Lock()
	s.inflight++
	s.errMsg = nil
	s.mu.Unlock()
}

func (s *State) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *State) fail(err error) {
	msg := err.Error()

	s.mu.Lock()
	s.errMsg = &msg
	s.mu.Unlock()

	s.logger.Warn().Err(err).Msg("weather action failed")

	for _, o := range s.observers {
		o.WeatherFailed(err)
	}
}

func (s *State) recoverPanic() {
	if r := recover(); r != nil {
		s.fail(fmt.Errorf("unexpected error: %v", r))
	}
}
