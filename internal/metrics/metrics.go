package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ── HTTP request metrics (RED method) ──────────────────────────────────

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "defipulse",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "defipulse",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "defipulse",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})
)

// ── Upstream metrics API ───────────────────────────────────────────────

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "defipulse",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total requests sent to the metrics API per dataset.",
	}, []string{"category", "dataset", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "defipulse",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of metrics API requests in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"category", "dataset"})

	UpstreamRows = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "defipulse",
		Subsystem: "upstream",
		Name:      "rows",
		Help:      "Number of rows returned by the metrics API.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
	}, []string{"category", "dataset"})
)

// ── Chart shaping ──────────────────────────────────────────────────────

var (
	EmptyChartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "defipulse",
		Subsystem: "chart",
		Name:      "empty_total",
		Help:      "Dashboards that produced no series because a required row was missing.",
	}, []string{"dataset"})
)
