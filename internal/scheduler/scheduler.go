package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/solar-dashboard/internal/dashboard"
	"github.com/i474232898/solar-dashboard/internal/geo"
)

const (
	defaultStatsInterval = 5 * time.Second
	defaultPollInterval  = 15 * time.Minute
	pollTimeout          = 30 * time.Second
	pollConcurrency      = 4
)

// StatsRefresher redraws the dashboard figures.
type StatsRefresher interface {
	Refresh() dashboard.Stats
}

// Resolver turns a place name into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, name string) (geo.Coordinates, error)
}

// WeatherFetcher is satisfied by *weather.State.
type WeatherFetcher interface {
	FetchWeatherData(ctx context.Context, lat, lon float64)
}

// SolarFetcher is satisfied by *solar.State.
type SolarFetcher interface {
	FetchSolarData(ctx context.Context, lat, lon float64)
}

// Config controls the jobs. Zero intervals fall back to the defaults.
type Config struct {
	StatsInterval time.Duration
	PollInterval  time.Duration
	Locations     []string
}

// Scheduler periodically refreshes dashboard statistics and polls the
// configured locations through the state containers.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cfg       Config
	stats     StatsRefresher
	resolver  Resolver
	weather   WeatherFetcher
	solar     SolarFetcher
	logger    zerolog.Logger
}

// New creates a new Scheduler. Polling is skipped when resolver or either
// fetcher is nil.
func New(cfg Config, stats StatsRefresher, resolver Resolver, w WeatherFetcher, s SolarFetcher, logger zerolog.Logger) *Scheduler {
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = defaultStatsInterval
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		stats:     stats,
		resolver:  resolver,
		weather:   w,
		solar:     s,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start schedules the jobs and starts the underlying scheduler. Both jobs
// run once immediately.
func (s *Scheduler) Start() error {
	if s.stats != nil {
		_, err := s.scheduler.Every(s.cfg.StatsInterval).SingletonMode().Do(func() {
			st := s.stats.Refresh()
			s.logger.Trace().
				Float64("totalGeneration", st.TotalGeneration).
				Int("activeSites", st.ActiveSites).
				Msg("dashboard stats refreshed")
		})
		if err != nil {
			return fmt.Errorf("scheduling stats job: %w", err)
		}
	}

	if s.pollEnabled() {
		_, err := s.scheduler.Every(s.cfg.PollInterval).SingletonMode().Do(func() {
			s.logger.Info().Int("locations", len(s.cfg.Locations)).Msg("running location poll job")
			if err := s.Poll(context.Background()); err != nil {
				s.logger.Warn().Err(err).Msg("location poll finished with errors")
				return
			}
			s.logger.Info().Msg("completed location poll job")
		})
		if err != nil {
			return fmt.Errorf("scheduling poll job: %w", err)
		}
	} else {
		s.logger.Info().Msg("no poll locations configured; polling disabled")
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Poll resolves every configured location and refreshes weather and solar
// data for it. Fetch failures land in the states' error slots; resolution
// failures are joined and returned without affecting other locations.
func (s *Scheduler) Poll(ctx context.Context) error {
	if !s.pollEnabled() {
		return nil
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(pollConcurrency)

	for _, name := range s.cfg.Locations {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(ctx, pollTimeout)
			defer cancel()

			p, err := s.resolver.Resolve(ctx, name)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("resolve %q: %w", name, err))
				mu.Unlock()
				return nil
			}

			s.weather.FetchWeatherData(ctx, p.Lat(), p.Lon())
			s.solar.FetchSolarData(ctx, p.Lat(), p.Lon())
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (s *Scheduler) pollEnabled() bool {
	return len(s.cfg.Locations) > 0 && s.resolver != nil && s.weather != nil && s.solar != nil
}
