package routes

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes recorded by Metrics.
const (
	OutcomeHit       = "hit"
	OutcomeBroadened = "broadened"
	OutcomeZero      = "zero_result"
	OutcomeError     = "error"
)

// Metrics holds the Prometheus collectors of the search server.
type Metrics struct {
	registry *prometheus.Registry

	SearchesTotal *prometheus.CounterVec
	SearchLatency prometheus.Histogram
	ResultsCount  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on their own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filesearch_searches_total",
				Help: "Search requests by outcome (hit, broadened, zero_result, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "filesearch_search_duration_seconds",
				Help:    "Time to load the index and rank the matches.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		),
		ResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "filesearch_search_results",
				Help:    "Number of matches found per search.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}

	m.registry.MustRegister(m.SearchesTotal, m.SearchLatency, m.ResultsCount)
	return m
}

// Observe records one search.
func (m *Metrics) Observe(outcome string, took time.Duration, total int) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchLatency.Observe(took.Seconds())
	if outcome != OutcomeError {
		m.ResultsCount.Observe(float64(total))
	}
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
