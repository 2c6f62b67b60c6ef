// Package main provides the entry point for the solar dashboard CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/i474232898/solar-dashboard/internal/config"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
	// BuildDate is set at build time.
	BuildDate = "unknown"
)

var cfg *config.AppConfig

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "solar-dashboard",
		Short: "Solar Dashboard - weather and solar generation data for India",
		Long: `Solar Dashboard serves weather observations, solar generation readings and
generation forecasts for solar sites across India.

Features:
  - Rolling weather and solar histories with a selected location
  - Multi-day generation forecasts
  - Synthetic data API for the ten catalogued sites
  - Periodic dashboard statistics and location polling
  - Prometheus metrics endpoint`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.DataAPIURL, "api-url", cfg.DataAPIURL, "Base URL of the weather/solar data API (default: this server)")
	rootCmd.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "Timeout for data API requests")
	rootCmd.PersistentFlags().IntVar(&cfg.ClientMaxRetries, "max-retries", cfg.ClientMaxRetries, "Retries after a failed data API request")
	rootCmd.PersistentFlags().IntVar(&cfg.ClientBreakerFailures, "breaker-failures", cfg.ClientBreakerFailures, "Consecutive failures that open a per-endpoint circuit breaker (0 disables)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")
	rootCmd.PersistentFlags().StringVar(&cfg.GeocoderAPIKey, "geocoder-api-key", cfg.GeocoderAPIKey, "Google geocoding API key for place names outside the catalog")

	// Add subcommands
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(sitesCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger() zerolog.Logger {
	var logger zerolog.Logger

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}

	return logger
}
