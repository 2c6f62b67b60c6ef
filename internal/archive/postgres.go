// Package archive appends fetched weather and solar records to PostgreSQL.
// The archive is write-only: nothing is ever read back into the dashboard
// state.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

const (
	tableWeather = "weather_records"
	tableSolar   = "solar_records"
)

const schema = `
CREATE TABLE IF NOT EXISTS weather_records (
	id               BIGSERIAL PRIMARY KEY,
	location         TEXT NOT NULL,
	temperature      DOUBLE PRECISION,
	humidity         DOUBLE PRECISION,
	pressure         DOUBLE PRECISION,
	wind_speed       DOUBLE PRECISION,
	wind_direction   DOUBLE PRECISION,
	cloud_cover      DOUBLE PRECISION,
	visibility       DOUBLE PRECISION,
	uv_index         DOUBLE PRECISION,
	solar_irradiance DOUBLE PRECISION,
	observed_at      TEXT NOT NULL,
	archived_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS solar_records (
	id                 BIGSERIAL PRIMARY KEY,
	location           TEXT NOT NULL,
	latitude           DOUBLE PRECISION,
	longitude          DOUBLE PRECISION,
	solar_irradiance   DOUBLE PRECISION,
	predicted_output   DOUBLE PRECISION,
	efficiency         DOUBLE PRECISION,
	daily_generation   DOUBLE PRECISION,
	monthly_generation DOUBLE PRECISION,
	yearly_generation  DOUBLE PRECISION,
	peak_hours         DOUBLE PRECISION,
	cloud_cover_impact DOUBLE PRECISION,
	observed_at        TEXT NOT NULL,
	archived_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// execer is the subset of *sql.DB the archive writes through.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WriteRecorder receives the outcome of every archive write.
type WriteRecorder interface {
	RecordArchiveWrite(table, status string)
}

// Archive implements weather.Observer and solar.Observer.
type Archive struct {
	db       execer
	closer   func() error
	timeout  time.Duration
	recorder WriteRecorder
	logger   zerolog.Logger
}

var (
	_ weather.Observer = (*Archive)(nil)
	_ solar.Observer   = (*Archive)(nil)
)

// New opens a PostgreSQL connection and makes sure the tables exist.
func New(ctx context.Context, dsn string, recorder WriteRecorder, logger zerolog.Logger) (*Archive, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	a := newArchive(db, recorder, logger)
	a.closer = db.Close

	if err := a.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newArchive(db execer, recorder WriteRecorder, logger zerolog.Logger) *Archive {
	return &Archive{
		db:       db,
		closer:   func() error { return nil },
		timeout:  5 * time.Second,
		recorder: recorder,
		logger:   logger.With().Str("component", "archive").Logger(),
	}
}

// EnsureSchema creates the archive tables if needed.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating archive schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.closer()
}

// InsertWeather appends a weather record.
func (a *Archive) InsertWeather(ctx context.Context, rec weather.Record) error {
	query := `
		INSERT INTO weather_records (location, temperature, humidity, pressure, wind_speed, wind_direction,
			cloud_cover, visibility, uv_index, solar_irradiance, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := a.db.ExecContext(ctx, query,
		rec.Location,
		rec.Temperature,
		rec.Humidity,
		rec.Pressure,
		rec.WindSpeed,
		rec.WindDirection,
		rec.CloudCover,
		rec.Visibility,
		rec.UVIndex,
		rec.SolarIrradiance,
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("inserting weather record: %w", err)
	}
	return nil
}

// InsertSolar appends a solar record.
func (a *Archive) InsertSolar(ctx context.Context, rec solar.Record) error {
	query := `
		INSERT INTO solar_records (location, latitude, longitude, solar_irradiance, predicted_output, efficiency,
			daily_generation, monthly_generation, yearly_generation, peak_hours, cloud_cover_impact, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := a.db.ExecContext(ctx, query,
		rec.Location,
		rec.Coordinates.Lat(),
		rec.Coordinates.Lon(),
		rec.SolarIrradiance,
		rec.PredictedOutput,
		rec.Efficiency,
		rec.DailyGeneration,
		rec.MonthlyGeneration,
		rec.YearlyGeneration,
		rec.PeakHours,
		rec.CloudCoverImpact,
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("inserting solar record: %w", err)
	}
	return nil
}

// WeatherStored implements weather.Observer.
func (a *Archive) WeatherStored(rec weather.Record, _ int) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	a.record(tableWeather, a.InsertWeather(ctx, rec))
}

// WeatherFailed implements weather.Observer.
func (a *Archive) WeatherFailed(error) {}

// SolarStored implements solar.Observer.
func (a *Archive) SolarStored(rec solar.Record, _ int) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	a.record(tableSolar, a.InsertSolar(ctx, rec))
}

// PredictionsStored implements solar.Observer. Forecasts are not archived.
func (a *Archive) PredictionsStored(int) {}

// SolarFailed implements solar.Observer.
func (a *Archive) SolarFailed(string, error) {}

func (a *Archive) record(table string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		a.logger.Error().Err(err).Str("table", table).Msg("archive write failed")
	}
	if a.recorder != nil {
		a.recorder.RecordArchiveWrite(table, status)
	}
}
