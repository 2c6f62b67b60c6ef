package dataclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour. MaxRetries of zero
// means a single attempt.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (b BackoffConfig) validate() error {
	if b.MaxRetries < 0 || (b.MaxRetries > 0 && b.InitialInterval <= 0) {
		return errInvalidConfig
	}
	return nil
}

// delay doubles InitialInterval per attempt, capped at MaxInterval when set.
func (b BackoffConfig) delay(attempt int) time.Duration {
	d := b.InitialInterval
	for i := 0; i < attempt; i++ {
		d *= 2
		if b.MaxInterval > 0 && d >= b.MaxInterval {
			return b.MaxInterval
		}
	}
	return d
}

// BreakerConfig enables one circuit breaker per endpoint. A zero Failures
// leaves breakers off, so every fetch reaches the data API.
type BreakerConfig struct {
	// Failures is the number of consecutive failures that opens a circuit.
	Failures uint32
	// OpenFor is how long an open circuit rejects requests.
	OpenFor time.Duration
}

func (b BreakerConfig) enabled() bool { return b.Failures > 0 }

var (
	errRateLimited   = errors.New("rate limited")
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// statusClass maps a request outcome onto the label used for metrics.
func statusClass(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errRateLimited):
		return "rate_limited"
	case errors.Is(err, errServerError):
		return "server_error"
	case errors.Is(err, errUnexpected):
		return "unexpected_status"
	case errors.Is(err, errCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

// transport sends GETs to the data API. Breakers are keyed by endpoint path
// and the map is nil when breakers are disabled.
type transport struct {
	client   *http.Client
	backoff  BackoffConfig
	breakers map[string]*gobreaker.CircuitBreaker
}

func newBreakers(cfg BreakerConfig, paths ...string) map[string]*gobreaker.CircuitBreaker {
	if !cfg.enabled() {
		return nil
	}
	openFor := cfg.OpenFor
	if openFor <= 0 {
		openFor = 2 * time.Minute
	}

	out := make(map[string]*gobreaker.CircuitBreaker, len(paths))
	for _, path := range paths {
		out[path] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "data-api " + path,
			MaxRequests: 1,
			Interval:    1 * time.Minute,
			Timeout:     openFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.Failures
			},
		})
	}
	return out
}

// get performs the request built by build, retrying failed attempts per the
// backoff config. An open circuit is never retried.
func (t *transport) get(ctx context.Context, path string, build func() (*http.Request, error)) (*http.Response, error) {
	if t.client == nil {
		return nil, errNoHTTPClient
	}
	if err := t.backoff.validate(); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := t.attempt(ctx, path, build)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, errCircuitOpen) || attempt >= t.backoff.MaxRetries || ctx.Err() != nil {
			return nil, err
		}

		timer := time.NewTimer(t.backoff.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (t *transport) attempt(ctx context.Context, path string, build func() (*http.Request, error)) (*http.Response, error) {
	req, err := build()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	cb := t.breakers[path]
	if cb == nil {
		return t.send(req)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		return t.send(req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s: %v", errCircuitOpen, path, err)
	}
	if err != nil {
		return nil, err
	}
	return result.(*http.Response), nil
}

func (t *transport) send(req *http.Request) (*http.Response, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		drain(resp)
		return nil, err
	}
	return resp, nil
}

// checkStatus maps non-2xx responses onto the sentinel errors.
func checkStatus(resp *http.Response) error {
	switch code := resp.StatusCode; {
	case code == http.StatusTooManyRequests:
		return errRateLimited
	case code >= 500:
		return fmt.Errorf("%w: %d", errServerError, code)
	case code < 200 || code >= 300:
		return fmt.Errorf("%w: %d", errUnexpected, code)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
