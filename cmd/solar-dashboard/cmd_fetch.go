package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/solar-dashboard/internal/catalog"
	"github.com/i474232898/solar-dashboard/internal/dataclient"
	"github.com/i474232898/solar-dashboard/internal/locator"
	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

func fetchCmd() *cobra.Command {
	var lat, lon float64
	var place string
	var days int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one state action against the data API",
		Long: `Runs a single fetch action against the data API and prints the resulting
state as JSON. Errors are reported in the "error" field of the state.`,
	}
	cmd.PersistentFlags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.PersistentFlags().Float64Var(&lon, "lon", 0, "Longitude")

	weatherCmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch weather data for a coordinate or a place",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout*time.Duration(cfg.ClientMaxRetries+2))
			defer cancel()

			state := weather.NewState(newClient(),
				weather.WithLocator(locator.New(catalog.Default(), cfg.GeocoderAPIKey, logger)),
				weather.WithLogger(logger),
			)
			if place != "" {
				state.UpdateLocation(ctx, place)
			} else {
				state.FetchWeatherData(ctx, lat, lon)
			}
			return printJSON(state.Snapshot())
		},
	}
	weatherCmd.Flags().StringVar(&place, "place", "", "Place or site name to resolve instead of --lat/--lon")

	solarCmd := &cobra.Command{
		Use:   "solar",
		Short: "Fetch solar data for a coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout*time.Duration(cfg.ClientMaxRetries+2))
			defer cancel()

			state := solar.NewState(newClient(), solar.WithLogger(logger))
			state.FetchSolarData(ctx, lat, lon)
			return printJSON(state.Snapshot())
		},
	}

	predictionsCmd := &cobra.Command{
		Use:   "predictions",
		Short: "Generate a solar forecast for a coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout*time.Duration(cfg.ClientMaxRetries+2))
			defer cancel()

			state := solar.NewState(newClient(),
				solar.WithMaxPredictionDays(cfg.PredictionMaxDays),
				solar.WithLogger(logger),
			)
			state.GeneratePredictions(ctx, lat, lon, days)
			return printJSON(state.Snapshot())
		},
	}
	predictionsCmd.Flags().IntVar(&days, "days", solar.DefaultPredictionDays, "Forecast horizon in days")

	cmd.AddCommand(weatherCmd, solarCmd, predictionsCmd)
	return cmd
}

func newClient() *dataclient.Client {
	return dataclient.New(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.DataAPIBaseURL(),
		dataclient.WithBackoff(dataclient.BackoffConfig{
			MaxRetries:      cfg.ClientMaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		}),
		dataclient.WithLogger(setupLogger()),
	)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
