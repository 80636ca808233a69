package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for search runs.
type Metrics struct {
	config MetricsConfig

	searchesStarted   prometheus.Counter
	searchesCompleted *prometheus.CounterVec
	searchDuration    *prometheus.HistogramVec
	expandedNodes     prometheus.Histogram
	pathLength        prometheus.Histogram
	activeSearches    prometheus.Gauge
	gridEdits         *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		// no-op metrics instance
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	buckets := cfg.DefaultHistogramBuckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	cellBuckets := prometheus.ExponentialBuckets(1, 2, 14)

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		searchesStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_started_total",
				Help:      "Total number of searches started",
			},
		),
		searchesCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_completed_total",
				Help:      "Total number of searches completed by outcome",
			},
			[]string{"outcome"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Duration of searches in seconds, observer time included",
				Buckets:   buckets,
			},
			[]string{"outcome"},
		),
		expandedNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_expanded_cells",
				Help:      "Number of cells expanded per search",
				Buckets:   cellBuckets,
			},
		),
		pathLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_path_length",
				Help:      "Length in moves of found paths",
				Buckets:   cellBuckets,
			},
		),
		activeSearches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_searches",
				Help:      "Current number of searches in progress",
			},
		),
		gridEdits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grid_edits_total",
				Help:      "Total number of grid edits by resulting cell state",
			},
			[]string{"state"},
		),
	}

	registry.MustRegister(
		m.searchesStarted,
		m.searchesCompleted,
		m.searchDuration,
		m.expandedNodes,
		m.pathLength,
		m.activeSearches,
		m.gridEdits,
	)

	return m, nil
}

func (m *Metrics) enabled() bool {
	return m != nil && m.registry != nil
}

// RecordSearchStarted records the start of a search.
func (m *Metrics) RecordSearchStarted() {
	if !m.enabled() {
		return
	}
	m.searchesStarted.Inc()
	m.activeSearches.Inc()
}

// RecordSearchCompleted records the end of a search.
func (m *Metrics) RecordSearchCompleted(outcome string, duration time.Duration, expanded, pathLength int) {
	if !m.enabled() {
		return
	}
	m.activeSearches.Dec()
	m.searchesCompleted.WithLabelValues(outcome).Inc()
	m.searchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.expandedNodes.Observe(float64(expanded))
	if pathLength > 0 {
		m.pathLength.Observe(float64(pathLength))
	}
}

// RecordGridEdit records an edit that left a cell in state.
func (m *Metrics) RecordGridEdit(state string) {
	if !m.enabled() {
		return
	}
	m.gridEdits.WithLabelValues(state).Inc()
}

// Registry returns the registry backing the metrics, nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if !m.enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Timer measures elapsed time for a duration metric.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time elapsed since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
