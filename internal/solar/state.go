package solar

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/i474232898/solar-dashboard/internal/store"
)

const (
	// DefaultPredictionDays is the forecast horizon used when none is given.
	DefaultPredictionDays = 7
	// MaxPredictionDays is the default upper bound for a forecast horizon.
	MaxPredictionDays = 30
)

// Operation names reported to observers.
const (
	OpFetch   = "fetch"
	OpPredict = "predict"
)

// State holds the rolling solar history, the selected record and the latest
// forecast. A single busy flag and error slot are shared by both fetch
// actions, so callers cannot tell from state alone which one is pending.
type State struct {
	source    Source
	observers []Observer
	logger    zerolog.Logger
	maxDays   int

	history *store.History[Record]

	mu          sync.RWMutex
	predictions []Prediction
	selected    *Record
	inflight    int
	errMsg      *string
}

// Option configures a State.
type Option func(*State)

// WithCapacity overrides the history capacity (default store.DefaultCapacity).
func WithCapacity(n int) Option {
	return func(s *State) {
		s.history = store.NewHistory[Record](n)
	}
}

// WithMaxPredictionDays overrides the forecast horizon upper bound.
func WithMaxPredictionDays(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxDays = n
		}
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

// NewState creates an empty solar state reading from source.
func NewState(source Source, opts ...Option) *State {
	s := &State{
		source:  source,
		history: store.NewHistory[Record](store.DefaultCapacity),
		logger:  zerolog.Nop(),
		maxDays: MaxPredictionDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "solar-state").Logger()
	return s
}

// ClampDays bounds a requested forecast horizon to [1, limit].
func ClampDays(days, limit int) int {
	if days < 1 {
		return 1
	}
	if days > limit {
		return limit
	}
	return days
}

// FetchSolarData requests solar data for a coordinate pair. On success the
// record is prepended to the history and becomes the selected location.
func (s *State) FetchSolarData(ctx context.Context, lat, lon float64) {
	s.begin()
	defer s.end()
	defer s.recoverPanic(OpFetch)

	rec, err := s.source.FetchSolar(ctx, lat, lon)
	if err != nil {
		s.fail(OpFetch, err)
		return
	}

	s.mu.Lock()
	selected := rec
	s.selected = &selected
	s.history.Prepend(rec)
	n := s.history.Len()
	s.mu.Unlock()

	s.logger.Debug().
		Str("location", rec.Location).
		Float64("lat", lat).
		Float64("lon", lon).
		Int("history", n).
		Msg("stored solar record")

	for _, o := range s.observers {
		o.SolarStored(rec, n)
	}
}

// GeneratePredictions requests a forecast of days entries, clamped to
// [1, the configured maximum], and replaces the prediction list with the
// response. Responses longer than the horizon are truncated.
func (s *State) GeneratePredictions(ctx context.Context, lat, lon float64, days int) {
	s.begin()
	defer s.end()
	defer s.recoverPanic(OpPredict)

	days = ClampDays(days, s.maxDays)

	preds, err := s.source.FetchPredictions(ctx, lat, lon, days)
	if err != nil {
		s.fail(OpPredict, err)
		return
	}
	if len(preds) > days {
		preds = preds[:days]
	}

	next := make([]Prediction, len(preds))
	copy(next, preds)

	s.mu.Lock()
	s.predictions = next
	s.mu.Unlock()

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Int("days", days).
		Int("count", len(next)).
		Msg("stored predictions")

	for _, o := range s.observers {
		o.PredictionsStored(len(next))
	}
}

// SelectLocation marks an already fetched record as the active selection.
func (s *State) SelectLocation(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	selected := rec
	s.selected = &selected
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		SolarData:   s.history.Items(),
		Predictions: make([]Prediction, len(s.predictions)),
		Loading:     s.inflight > 0,
	}
	copy(snap.Predictions, s.predictions)
	if s.selected != nil {
		sel := *s.selected
		snap.SelectedLocation = &sel
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

func (s *State) fail(op string, err error) {
	msg := err.Error()

	s.mu.Lock()
	s.errMsg = &msg
	s.mu.Unlock()

	s.logger.Warn().Err(err).Str("op", op).Msg("solar action failed")

	for _, o := range s.observers {
		o.SolarFailed(op, err)
	}
}

func (s *State) recoverPanic(op string) {
	if r := recover(); r != nil {
		s.fail(op, fmt.Errorf("unexpected error: %v", r))
	}
}
