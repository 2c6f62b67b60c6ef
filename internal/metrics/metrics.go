// Package metrics provides the Prometheus metrics of the dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

// Metrics holds all Prometheus metrics for the dashboard.
type Metrics struct {
	reg prometheus.Registerer

	// Data API client metrics
	DataRequestsTotal   *prometheus.CounterVec
	DataRequestDuration *prometheus.HistogramVec

	// State container metrics
	HistoryLength     *prometheus.GaugeVec
	PredictionsStored prometheus.Gauge
	StateErrorsTotal  *prometheus.CounterVec
	LastUpdate        *prometheus.GaugeVec

	// Archive metrics
	ArchiveWritesTotal *prometheus.CounterVec
}

var (
	_ weather.Observer = (*Metrics)(nil)
	_ solar.Observer   = (*Metrics)(nil)
)

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,

		DataRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solardash_data_requests_total",
				Help: "Total number of data API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		DataRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solardash_data_request_duration_seconds",
				Help:    "Data API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		HistoryLength: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "solardash_history_length",
				Help: "Number of records retained in a state history",
			},
			[]string{"state"},
		),
		PredictionsStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "solardash_predictions_stored",
				Help: "Number of entries in the current solar forecast",
			},
		),
		StateErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solardash_state_errors_total",
				Help: "Total number of failed state actions by state and operation",
			},
			[]string{"state", "op"},
		),
		LastUpdate: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "solardash_last_update_timestamp",
				Help: "Timestamp of the last successful state update",
			},
			[]string{"state"},
		),
		ArchiveWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solardash_archive_writes_total",
				Help: "Total number of archive writes by table and status",
			},
			[]string{"table", "status"},
		),
	}
}

// ObserveRequest implements dataclient.RequestObserver.
func (m *Metrics) ObserveRequest(endpoint, status string, duration time.Duration) {
	m.DataRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.DataRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// WeatherStored implements weather.Observer.
func (m *Metrics) WeatherStored(_ weather.Record, historyLen int) {
	m.HistoryLength.WithLabelValues("weather").Set(float64(historyLen))
	m.LastUpdate.WithLabelValues("weather").SetToCurrentTime()
}

// WeatherFailed implements weather.Observer.
func (m *Metrics) WeatherFailed(error) {
	m.StateErrorsTotal.WithLabelValues("weather", "fetch").Inc()
}

// SolarStored implements solar.Observer.
func (m *Metrics) SolarStored(_ solar.Record, historyLen int) {
	m.HistoryLength.WithLabelValues("solar").Set(float64(historyLen))
	m.LastUpdate.WithLabelValues("solar").SetToCurrentTime()
}

// PredictionsStored implements solar.Observer.
func (m *Metrics) PredictionsStored(count int) {
	m.PredictionsStored.Set(float64(count))
	m.LastUpdate.WithLabelValues("predictions").SetToCurrentTime()
}

// SolarFailed implements solar.Observer.
func (m *Metrics) SolarFailed(op string, _ error) {
	m.StateErrorsTotal.WithLabelValues("solar", op).Inc()
}

// RecordArchiveWrite records an archive write.
func (m *Metrics) RecordArchiveWrite(table, status string) {
	m.ArchiveWritesTotal.WithLabelValues(table, status).Inc()
}

// RegisterBusy exposes a state's busy flag as solardash_state_loading.
func (m *Metrics) RegisterBusy(state string, loading func() bool) {
	promauto.With(m.reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "solardash_state_loading",
			Help:        "Whether a state has a fetch pending (1) or not (0)",
			ConstLabels: prometheus.Labels{"state": state},
		},
		func() float64 {
			if loading() {
				return 1
			}
			return 0
		},
	)
}
