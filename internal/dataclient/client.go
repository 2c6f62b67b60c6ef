// Package dataclient talks to the weather and solar data endpoints that back
// the dashboard state containers.
package dataclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

// Endpoint paths served by the data API.
const (
	PathWeather     = "/api/weather"
	PathSolar       = "/api/solar"
	PathPredictions = "/api/solar/predictions"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestObserver receives the outcome of every request.
type RequestObserver interface {
	ObserveRequest(endpoint, status string, duration time.Duration)
}

// Client implements weather.Source and solar.Source over HTTP.
type Client struct {
	baseURL   string
	transport transport
	breaker   BreakerConfig
	observer  RequestObserver
	logger    zerolog.Logger
}

var (
	_ weather.Source = (*Client)(nil)
	_ solar.Source   = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithBackoff enables retries. The default is a single attempt.
func WithBackoff(b BackoffConfig) Option {
	return func(c *Client) {
		c.transport.backoff = b
	}
}

// WithBreaker enables a circuit breaker per endpoint. Breakers are off by
// default.
func WithBreaker(b BreakerConfig) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// WithObserver registers a RequestObserver.
func WithObserver(o RequestObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the data API rooted at baseURL.
func New(client *http.Client, baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		transport: transport{
			client: client,
			backoff: BackoffConfig{
				MaxRetries:      0,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport.breakers = newBreakers(c.breaker, PathWeather, PathSolar, PathPredictions)
	c.logger = c.logger.With().Str("component", "dataclient").Logger()
	return c
}

// FetchWeather implements weather.Source.
func (c *Client) FetchWeather(ctx context.Context, lat, lon float64) (weather.Record, error) {
	rec, err := getJSON[weather.Record](ctx, c, PathWeather, coordValues(lat, lon))
	if err != nil {
		return weather.Record{}, fmt.Errorf("failed to fetch weather data: %w", err)
	}
	return rec, nil
}

// FetchSolar implements solar.Source.
func (c *Client) FetchSolar(ctx context.Context, lat, lon float64) (solar.Record, error) {
	rec, err := getJSON[solar.Record](ctx, c, PathSolar, coordValues(lat, lon))
	if err != nil {
		return solar.Record{}, fmt.Errorf("failed to fetch solar data: %w", err)
	}
	return rec, nil
}

// FetchPredictions implements solar.Source.
func (c *Client) FetchPredictions(ctx context.Context, lat, lon float64, days int) ([]solar.Prediction, error) {
	values := coordValues(lat, lon)
	values.Set("days", strconv.Itoa(days))

	preds, err := getJSON[[]solar.Prediction](ctx, c, PathPredictions, values)
	if err != nil {
		return nil, fmt.Errorf("failed to generate predictions: %w", err)
	}
	return preds, nil
}

// BreakerState reports the circuit breaker state of an endpoint path, e.g.
// "closed", or "disabled" when breakers are off.
func (c *Client) BreakerState(path string) string {
	cb, ok := c.transport.breakers[path]
	if !ok {
		return "disabled"
	}
	return cb.State().String()
}

func coordValues(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return values
}

func getJSON[T any](ctx context.Context, c *Client, path string, values url.Values) (T, error) {
	var out T

	requestID := uuid.NewString()
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set(RequestIDHeader, requestID)
		return req, nil
	}

	start := time.Now()
	resp, err := c.transport.get(ctx, path, buildRequest)
	if err == nil {
		defer resp.Body.Close()
		err = json.NewDecoder(resp.Body).Decode(&out)
	}
	duration := time.Since(start)

	if c.observer != nil {
		c.observer.ObserveRequest(path, statusClass(err), duration)
	}

	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("path", path).
			Str("requestID", requestID).
			Dur("duration", duration).
			Msg("data request failed")
		return out, err
	}

	c.logger.Debug().
		Str("path", path).
		Str("requestID", requestID).
		Dur("duration", duration).
		Msg("data request completed")
	return out, nil
}
