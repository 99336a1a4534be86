package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the aggregation service.
type Metrics struct {
	SourceFetches  *prometheus.CounterVec // labels: dataset, outcome={ok,degraded,skipped}
	FanOutDuration prometheus.Histogram
	ReportsBuilt   prometheus.Counter
	ReportFailures prometheus.Counter
	RequestsTotal  *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceFetches,
		m.FanOutDuration,
		m.ReportsBuilt,
		m.ReportFailures,
		m.RequestsTotal,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so parallel tests do
// not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vimnyc",
			Name:      "source_fetches_total",
			Help:      "Dataset fetches by dataset id and outcome.",
		}, []string{"dataset", "outcome"}),
		FanOutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vimnyc",
			Name:      "fanout_duration_seconds",
			Help:      "Duration of the full source fan-out per building report.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 12, 20, 30},
		}),
		ReportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vimnyc",
			Name:      "reports_built_total",
			Help:      "Building reports assembled successfully.",
		}),
		ReportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vimnyc",
			Name:      "report_failures_total",
			Help:      "Building report requests that failed outright.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vimnyc",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}
}
