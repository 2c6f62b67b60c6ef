package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the runtime configuration of the dashboard.
type AppConfig struct {
	Port string `validate:"required,numeric"`

	// DataAPIURL is where the state containers fetch from. Empty means this
	// process's own data API.
	DataAPIURL  string        `validate:"omitempty,url"`
	HTTPTimeout time.Duration `validate:"gt=0"`

	// ClientMaxRetries is the number of retries after a failed data request.
	ClientMaxRetries int `validate:"gte=0,lte=10"`

	// ClientBreakerFailures opens a per-endpoint circuit after that many
	// consecutive failures. 0 disables breakers.
	ClientBreakerFailures int           `validate:"gte=0"`
	ClientBreakerOpen     time.Duration `validate:"gt=0"`

	// HistoryCapacity bounds both state histories.
	HistoryCapacity   int `validate:"gte=1"`
	// PredictionMaxDays may not exceed the 30 days the data API accepts.
	PredictionMaxDays int `validate:"gte=1,lte=30"`

	// StartupDelay is the simulated loading step before serving. 0 disables it.
	StartupDelay time.Duration `validate:"gte=0"`

	StatsInterval time.Duration `validate:"gt=0"`
	PollInterval  time.Duration `validate:"gt=0"`
	// PollLocations are site or place names refreshed every PollInterval.
	PollLocations []string

	GeocoderAPIKey string
	PostgresDSN    string

	LogLevel  string `validate:"oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Port:              "8080",
		HTTPTimeout:       10 * time.Second,
		ClientMaxRetries:  0,
		ClientBreakerOpen: 2 * time.Minute,
		HistoryCapacity:   100,
		PredictionMaxDays: 30,
		StartupDelay:      2 * time.Second,
		StatsInterval:     5 * time.Second,
		PollInterval:      15 * time.Minute,
		LogLevel:          "info",
		LogFormat:         "console",
	}
}

// Load reads configuration from a .env file, if any, and the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	return LoadFromEnv()
}

// LoadFromEnv applies environment variables on top of DefaultConfig.
func LoadFromEnv() (*AppConfig, error) {
	cfg := DefaultConfig()

	cfg.Port = getenvDefault("PORT", cfg.Port)
	cfg.DataAPIURL = os.Getenv("DATA_API_URL")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", cfg.LogFormat))

	var err error
	if cfg.ClientMaxRetries, err = getenvInt("CLIENT_MAX_RETRIES", cfg.ClientMaxRetries); err != nil {
		return nil, err
	}
	if cfg.ClientBreakerFailures, err = getenvInt("CLIENT_BREAKER_FAILURES", cfg.ClientBreakerFailures); err != nil {
		return nil, err
	}
	if cfg.HistoryCapacity, err = getenvInt("HISTORY_CAPACITY", cfg.HistoryCapacity); err != nil {
		return nil, err
	}
	if cfg.PredictionMaxDays, err = getenvInt("PREDICTION_MAX_DAYS", cfg.PredictionMaxDays); err != nil {
		return nil, err
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", &cfg.HTTPTimeout},
		{"CLIENT_BREAKER_OPEN", &cfg.ClientBreakerOpen},
		{"STARTUP_DELAY", &cfg.StartupDelay},
		{"STATS_INTERVAL", &cfg.StatsInterval},
		{"POLL_INTERVAL", &cfg.PollInterval},
	}
	for _, d := range durations {
		if *d.dst, err = getenvDuration(d.key, *d.dst); err != nil {
			return nil, err
		}
	}

	cfg.PollLocations = SplitList(os.Getenv("POLL_LOCATIONS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the configuration values.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DataAPIBaseURL returns DataAPIURL, or this process's own address when it
// is unset.
func (c *AppConfig) DataAPIBaseURL() string {
	if c.DataAPIURL != "" {
		return c.DataAPIURL
	}
	return "http://127.0.0.1:" + c.Port
}

// SplitList splits a comma separated list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
