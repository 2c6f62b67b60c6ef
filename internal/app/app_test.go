package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/solar-dashboard/internal/config"
	"github.com/i474232898/solar-dashboard/internal/dataclient"
)

func testConfig() *config.AppConfig {
	cfg := config.DefaultConfig()
	cfg.StartupDelay = 0
	cfg.HistoryCapacity = 5
	return cfg
}

func TestNewWiresRoutes(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	for _, target := range []string{
		"/health",
		"/metrics",
		"/api/v1/weather/state",
		"/api/v1/solar/state",
		"/api/v1/sites",
		"/api/v1/dashboard",
		"/api/weather?lat=28.6&lon=77.2",
	} {
		resp, err := a.HTTP.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err, target)
		assert.Equal(t, http.StatusOK, resp.StatusCode, target)
		resp.Body.Close()
	}
	assert.Nil(t, a.Archive)
}

func TestStatesReadFromDataAPI(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)

	// Serve the synthetic data API over a real listener so the data client
	// can reach it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = a.HTTP.Listener(ln) }()
	defer a.HTTP.Shutdown()

	cfg := testConfig()
	cfg.DataAPIURL = "http://" + ln.Addr().String()
	b, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		b.Weather.FetchWeatherData(context.Background(), 28.6139, 77.2090)
	}
	b.Solar.FetchSolarData(context.Background(), 27.0238, 74.2179)
	b.Solar.GeneratePredictions(context.Background(), 27.0238, 74.2179, 45)

	ws := b.Weather.Snapshot()
	assert.Nil(t, ws.Error)
	assert.Len(t, ws.WeatherData, 5)
	require.NotNil(t, ws.CurrentWeather)
	assert.Equal(t, "Delhi NCR Solar Park", ws.CurrentWeather.Location)

	ss := b.Solar.Snapshot()
	assert.Nil(t, ss.Error)
	require.NotNil(t, ss.SelectedLocation)
	assert.Equal(t, "Rajasthan Desert Mega Plant", ss.SelectedLocation.Location)
	assert.Len(t, ss.Predictions, 30)
}

func TestUnreachableDataAPISetsError(t *testing.T) {
	cfg := testConfig()
	cfg.DataAPIURL = "http://127.0.0.1:1"
	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	a.Weather.FetchWeatherData(context.Background(), 28.6, 77.2)

	snap := a.Weather.Snapshot()
	require.NotNil(t, snap.Error)
	assert.Contains(t, *snap.Error, "failed to fetch weather data")
	assert.Empty(t, snap.WeatherData)
	assert.False(t, snap.Loading)
}

func TestSimulateStartupRunsOnce(t *testing.T) {
	cfg := testConfig()
	cfg.StartupDelay = 50 * time.Millisecond
	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, a.SimulateStartup(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	start = time.Now()
	require.NoError(t, a.SimulateStartup(context.Background()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestDelay(t *testing.T) {
	assert.NoError(t, Delay(context.Background(), 0))
	assert.NoError(t, Delay(context.Background(), -time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Delay(ctx, time.Hour), context.Canceled)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Port = "0"
	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestBreakerFollowsConfig(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "disabled", a.Client.BreakerState(dataclient.PathWeather))

	cfg := testConfig()
	cfg.ClientBreakerFailures = 3
	b, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "closed", b.Client.BreakerState(dataclient.PathWeather))
}
