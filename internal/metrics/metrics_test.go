package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

func TestObservers(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("/api/weather", "ok", 20*time.Millisecond)
	m.ObserveRequest("/api/weather", "ok", 30*time.Millisecond)
	m.ObserveRequest("/api/solar", "server_error", time.Millisecond)

	m.WeatherStored(weather.Record{}, 3)
	m.WeatherFailed(errors.New("x"))
	m.SolarStored(solar.Record{}, 7)
	m.SolarFailed(solar.OpPredict, errors.New("y"))
	m.PredictionsStored(5)
	m.RecordArchiveWrite("weather_records", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DataRequestsTotal.WithLabelValues("/api/weather", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DataRequestsTotal.WithLabelValues("/api/solar", "server_error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HistoryLength.WithLabelValues("weather")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.HistoryLength.WithLabelValues("solar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateErrorsTotal.WithLabelValues("weather", "fetch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateErrorsTotal.WithLabelValues("solar", "predict")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.PredictionsStored))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ArchiveWritesTotal.WithLabelValues("weather_records", "ok")))
}

func TestNewTwiceWithSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestRegisterBusy(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	busy := true
	m.RegisterBusy("weather", func() bool { return busy })

	count, err := testutil.GatherAndCount(reg, "solardash_state_loading")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	assert.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "solardash_state_loading" {
			assert.Equal(t, 1.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}

	busy = false
	families, _ = reg.Gather()
	for _, f := range families {
		if f.GetName() == "solardash_state_loading" {
			assert.Equal(t, 0.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
}
