package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	datasetLoads    *prometheus.CounterVec
	datasetRows     prometheus.Gauge
	refreshTotal    *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	selectionSize   prometheus.Gauge
	tokensIssued    prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		datasetLoads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataset_loads_total",
				Help: "Total number of dataset load attempts",
			},
			[]string{"status"},
		),
		datasetRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_rows",
				Help: "Number of normalized rows in the currently loaded dataset",
			},
		),
		refreshTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_refresh_total",
				Help: "Total number of dashboard refresh invocations",
			},
			[]string{"status"},
		),
		refreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_refresh_duration_milliseconds",
				Help:    "Dashboard refresh duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		selectionSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dashboard_selection_size",
				Help: "Number of regions in the current selection",
			},
		),
		tokensIssued: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "viewer_tokens_issued_total",
				Help: "Total number of viewer tokens issued",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "dataset.load":
		if status != "" {
			m.datasetLoads.WithLabelValues(status).Inc()
		}
	case "dashboard.refresh":
		if status != "" {
			m.refreshTotal.WithLabelValues(status).Inc()
		}
	case "viewer_token.issued":
		m.tokensIssued.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "dashboard.refresh":
		m.refreshDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "dataset.rows":
		m.datasetRows.Set(value)
	case "dashboard.selection_size":
		m.selectionSize.Set(value)
	}
}
