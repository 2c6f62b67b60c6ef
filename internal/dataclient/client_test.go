package dataclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/solar-dashboard/internal/geo"
	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

type observed struct {
	endpoint string
	status   string
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (r *recordingObserver) ObserveRequest(endpoint, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observed{endpoint, status})
}

func TestFetchWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathWeather, r.URL.Path)
		assert.Equal(t, "28.6", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.2", r.URL.Query().Get("lon"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		_ = json.NewEncoder(w).Encode(weather.Record{Location: "Delhi", Temperature: 30})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(srv.Client(), srv.URL+"/", WithObserver(obs))

	rec, err := c.FetchWeather(context.Background(), 28.6, 77.2)
	require.NoError(t, err)
	assert.Equal(t, "Delhi", rec.Location)
	assert.Equal(t, 30.0, rec.Temperature)
	assert.Equal(t, []observed{{PathWeather, "ok"}}, obs.seen)
}

func TestFetchSolarAndPredictions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(PathSolar, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"location":"Rajasthan Desert Mega Plant","coordinates":[27.0238,74.2179],"efficiency":91.4}`))
	})
	mux.HandleFunc(PathPredictions, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		preds := []solar.Prediction{{Date: "2026-10-20"}, {Date: "2026-10-21"}, {Date: "2026-10-22"}}
		_ = json.NewEncoder(w).Encode(preds)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.Client(), srv.URL)

	rec, err := c.FetchSolar(context.Background(), 27.0238, 74.2179)
	require.NoError(t, err)
	assert.Equal(t, geo.Coordinates{27.0238, 74.2179}, rec.Coordinates)
	assert.Equal(t, 91.4, rec.Efficiency)

	preds, err := c.FetchPredictions(context.Background(), 27.0238, 74.2179, 3)
	require.NoError(t, err)
	assert.Len(t, preds, 3)
}

func TestNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathWeather:
			w.WriteHeader(http.StatusInternalServerError)
		case PathSolar:
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(srv.Client(), srv.URL, WithObserver(obs))

	_, err := c.FetchWeather(context.Background(), 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errServerError))
	assert.Contains(t, err.Error(), "failed to fetch weather data")

	_, err = c.FetchSolar(context.Background(), 0, 0)
	assert.True(t, errors.Is(err, errUnexpected))
	assert.Contains(t, err.Error(), "failed to fetch solar data")

	_, err = c.FetchPredictions(context.Background(), 0, 0, 7)
	assert.True(t, errors.Is(err, errRateLimited))
	assert.Contains(t, err.Error(), "failed to generate predictions")

	assert.Equal(t, []observed{
		{PathWeather, "server_error"},
		{PathSolar, "unexpected_status"},
		{PathPredictions, "rate_limited"},
	}, obs.seen)
}

func TestNoRetryByDefault(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	_, err := c.FetchWeather(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRetryWithBackoff(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"location":"Hyderabad"}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, WithBackoff(BackoffConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}))

	rec, err := c.FetchWeather(context.Background(), 17.38, 78.48)
	require.NoError(t, err)
	assert.Equal(t, "Hyderabad", rec.Location)
	assert.Equal(t, int32(3), hits.Load())
}

func TestBreakerDisabledByDefault(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	for i := 0; i < 10; i++ {
		_, err := c.FetchWeather(context.Background(), 0, 0)
		require.True(t, errors.Is(err, errServerError))
	}

	assert.Equal(t, int32(10), hits.Load())
	assert.Equal(t, "disabled", c.BreakerState(PathWeather))
}

func TestBreakerOpensPerEndpoint(t *testing.T) {
	var solarHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == PathSolar {
			solarHits.Add(1)
			_, _ = w.Write([]byte(`{"location":"Kerala Coastal Array"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, WithBreaker(BreakerConfig{Failures: 3, OpenFor: time.Minute}))
	for i := 0; i < 3; i++ {
		_, _ = c.FetchWeather(context.Background(), 0, 0)
	}

	_, err := c.FetchWeather(context.Background(), 0, 0)
	assert.True(t, errors.Is(err, errCircuitOpen))
	assert.Equal(t, "open", c.BreakerState(PathWeather))

	rec, err := c.FetchSolar(context.Background(), 10.85, 76.27)
	require.NoError(t, err)
	assert.Equal(t, "Kerala Coastal Array", rec.Location)
	assert.Equal(t, int32(1), solarHits.Load())
	assert.Equal(t, "closed", c.BreakerState(PathSolar))
}

func TestOpenCircuitIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL,
		WithBreaker(BreakerConfig{Failures: 2}),
		WithBackoff(BackoffConfig{MaxRetries: 5, InitialInterval: time.Millisecond}),
	)
	_, err := c.FetchPredictions(context.Background(), 0, 0, 7)
	assert.True(t, errors.Is(err, errCircuitOpen))
	assert.Equal(t, int32(2), hits.Load())
}

func TestBackoffDelay(t *testing.T) {
	b := BackoffConfig{InitialInterval: 100 * time.Millisecond, MaxInterval: time.Second}
	assert.Equal(t, 100*time.Millisecond, b.delay(0))
	assert.Equal(t, 400*time.Millisecond, b.delay(2))
	assert.Equal(t, time.Second, b.delay(10))
}

func TestInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	_, err := c.FetchSolar(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	c := New(http.DefaultClient, "http://127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchWeather(ctx, 0, 0)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNoHTTPClient(t *testing.T) {
	c := New(nil, "http://localhost")
	_, err := c.FetchWeather(context.Background(), 0, 0)
	assert.True(t, errors.Is(err, errNoHTTPClient))
}
