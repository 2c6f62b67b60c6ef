// Package app wires the dashboard components together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	httpapi "github.com/i474232898/solar-dashboard/internal/api/http"
	"github.com/i474232898/solar-dashboard/internal/archive"
	"github.com/i474232898/solar-dashboard/internal/catalog"
	"github.com/i474232898/solar-dashboard/internal/config"
	"github.com/i474232898/solar-dashboard/internal/dashboard"
	"github.com/i474232898/solar-dashboard/internal/dataclient"
	"github.com/i474232898/solar-dashboard/internal/generator"
	"github.com/i474232898/solar-dashboard/internal/locator"
	"github.com/i474232898/solar-dashboard/internal/metrics"
	"github.com/i474232898/solar-dashboard/internal/scheduler"
	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

const shutdownTimeout = 10 * time.Second

// App owns every component of a running dashboard.
type App struct {
	cfg    *config.AppConfig
	logger zerolog.Logger

	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	Catalog   *catalog.Catalog
	Generator *generator.Generator
	Board     *dashboard.Board
	Locator   *locator.Locator
	Client    *dataclient.Client
	Weather   *weather.State
	Solar     *solar.State
	Archive   *archive.Archive
	Scheduler *scheduler.Scheduler
	HTTP      *fiber.App

	startupOnce sync.Once
	startupErr  error
}

// New builds the App from cfg. The archive is only opened when a Postgres
// DSN is configured.
func New(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   logger.With().Str("component", "app").Logger(),
		Registry: prometheus.NewRegistry(),
	}

	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.New(a.Registry)

	a.Catalog = catalog.Default()
	a.Generator = generator.New(a.Catalog, 0)
	a.Board = dashboard.NewBoard(0)
	a.Locator = locator.New(a.Catalog, cfg.GeocoderAPIKey, logger)

	// Shared HTTP client for data API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	a.Client = dataclient.New(httpClient, cfg.DataAPIBaseURL(),
		dataclient.WithBackoff(dataclient.BackoffConfig{
			MaxRetries:      cfg.ClientMaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		}),
		dataclient.WithBreaker(dataclient.BreakerConfig{
			Failures: uint32(cfg.ClientBreakerFailures),
			OpenFor:  cfg.ClientBreakerOpen,
		}),
		dataclient.WithObserver(a.Metrics),
		dataclient.WithLogger(logger),
	)

	weatherObservers := []weather.Observer{a.Metrics}
	solarObservers := []solar.Observer{a.Metrics}
	if cfg.PostgresDSN != "" {
		arc, err := archive.New(ctx, cfg.PostgresDSN, a.Metrics, logger)
		if err != nil {
			return nil, fmt.Errorf("opening archive: %w", err)
		}
		a.Archive = arc
		weatherObservers = append(weatherObservers, arc)
		solarObservers = append(solarObservers, arc)
	}

	a.Weather = weather.NewState(a.Client,
		weather.WithCapacity(cfg.HistoryCapacity),
		weather.WithLocator(a.Locator),
		weather.WithObserver(weatherObservers...),
		weather.WithLogger(logger),
	)
	a.Solar = solar.NewState(a.Client,
		solar.WithCapacity(cfg.HistoryCapacity),
		solar.WithMaxPredictionDays(cfg.PredictionMaxDays),
		solar.WithObserver(solarObservers...),
		solar.WithLogger(logger),
	)
	a.Metrics.RegisterBusy("weather", a.Weather.Loading)
	a.Metrics.RegisterBusy("solar", a.Solar.Loading)

	a.Scheduler = scheduler.New(scheduler.Config{
		StatsInterval: cfg.StatsInterval,
		PollInterval:  cfg.PollInterval,
		Locations:     cfg.PollLocations,
	}, a.Board, a.Locator, a.Weather, a.Solar, logger)

	a.HTTP = httpapi.NewApp(logger, a.Registry)
	httpapi.RegisterDataRoutes(a.HTTP, a.Generator)
	httpapi.RegisterRoutes(a.HTTP, httpapi.Dependencies{
		Weather: a.Weather,
		Solar:   a.Solar,
		Catalog: a.Catalog,
		Board:   a.Board,
	})

	return a, nil
}

// SimulateStartup is the dashboard's artificial loading step. It waits for
// the configured delay once per App and is not tied to any readiness check.
func (a *App) SimulateStartup(ctx context.Context) error {
	a.startupOnce.Do(func() {
		a.startupErr = Delay(ctx, a.cfg.StartupDelay)
	})
	return a.startupErr
}

// Delay blocks for d or until ctx is done. A non-positive d returns at once.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run performs the startup delay, starts the scheduler and serves HTTP until
// ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Dur("delay", a.cfg.StartupDelay).Msg("loading dashboard")
	if err := a.SimulateStartup(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if err := a.Scheduler.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer a.Scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + a.cfg.Port
		a.logger.Info().Str("addr", addr).Msg("http server listening")
		errCh <- a.HTTP.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.HTTP.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the archive connection, if any.
func (a *App) Close() error {
	if a.Archive == nil {
		return nil
	}
	return a.Archive.Close()
}
