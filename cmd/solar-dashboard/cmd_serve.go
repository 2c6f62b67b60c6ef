package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/i474232898/solar-dashboard/internal/app"
	"github.com/i474232898/solar-dashboard/internal/config"
)

func serveCmd() *cobra.Command {
	var pollLocations string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long:  "Starts the HTTP server with the data API, the state API and the background scheduler.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			if cmd.Flags().Changed("poll-locations") {
				cfg.PollLocations = config.SplitList(pollLocations)
			}

			logger.Info().
				Str("version", Version).
				Str("commit", Commit).
				Str("buildDate", BuildDate).
				Str("port", cfg.Port).
				Str("dataAPI", cfg.DataAPIBaseURL()).
				Strs("pollLocations", cfg.PollLocations).
				Bool("archive", cfg.PostgresDSN != "").
				Msg("starting solar dashboard")

			// Setup signal handling
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("building app: %w", err)
			}
			defer a.Close()

			if err := a.Run(ctx); err != nil {
				return err
			}

			logger.Info().Msg("shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP port to listen on")
	cmd.Flags().StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string for the record archive (optional)")
	cmd.Flags().DurationVar(&cfg.StartupDelay, "startup-delay", cfg.StartupDelay, "Simulated loading delay before serving (0 disables)")
	cmd.Flags().DurationVar(&cfg.StatsInterval, "stats-interval", cfg.StatsInterval, "How often dashboard statistics are refreshed")
	cmd.Flags().DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "How often poll locations are refreshed")
	cmd.Flags().StringVar(&pollLocations, "poll-locations", "", "Comma-separated site or place names to poll")
	cmd.Flags().IntVar(&cfg.HistoryCapacity, "history-capacity", cfg.HistoryCapacity, "Records kept per state history")
	cmd.Flags().IntVar(&cfg.PredictionMaxDays, "prediction-max-days", cfg.PredictionMaxDays, "Upper bound of a forecast horizon")

	return cmd
}
