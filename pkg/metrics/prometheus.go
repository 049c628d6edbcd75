// Package metrics provides Prometheus metrics for the tally aggregation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Failure reason label values for month load failures.
const (
	ReasonLoad  = "load"
	ReasonParse = "parse"
)

// Manager manages all Prometheus metrics for the tally service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Aggregation metrics.
	monthLoads           prometheus.Counter
	monthLoadFailures    *prometheus.CounterVec
	submissionsProcessed prometheus.Counter
	teamsTotal           prometheus.Gauge
	monthsConfigured     prometheus.Gauge
	aggregationDuration  prometheus.Histogram

	// Snapshot metrics.
	snapshotRefreshes prometheus.Counter
	snapshotLastUnix  prometheus.Gauge
	snapshotDuration  prometheus.Histogram

	// Source metrics.
	watcherEvents prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tally",
		subsystem:        "scores",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.monthLoads = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "month_loads_total",
		Help:      "Total number of month resources loaded successfully.",
	})

	m.monthLoadFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "month_load_failures_total",
		Help:      "Total number of month loads that failed, by reason.",
	}, []string{"reason"})

	m.submissionsProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_processed_total",
		Help:      "Total number of submissions folded into team totals.",
	})

	m.teamsTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_total",
		Help:      "Number of distinct teams in the latest aggregation.",
	})

	m.monthsConfigured = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "months_configured",
		Help:      "Number of month identifiers in the active manifest.",
	})

	m.aggregationDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_duration_ms",
		Help:      "Duration of a full totals aggregation in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotRefreshes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_refreshes_total",
		Help:      "Total number of snapshot refreshes performed.",
	})

	m.snapshotLastUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_refresh_unix",
		Help:      "Unix timestamp of the last completed snapshot refresh.",
	})

	m.snapshotDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_refresh_duration_ms",
		Help:      "Duration of a snapshot refresh in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.watcherEvents = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "watcher_events_total",
		Help:      "Total number of data-file change events observed.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes.",
	})

	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})
}

// RecordMonthLoad increments the successful month load counter.
func RecordMonthLoad() {
	globalManager.monthLoads.Inc()
}

// RecordMonthLoadFailure increments the month load failure counter for reason.
func RecordMonthLoadFailure(reason string) {
	globalManager.monthLoadFailures.WithLabelValues(reason).Inc()
}

// RecordSubmissions adds n to the processed submissions counter.
func RecordSubmissions(n int) {
	globalManager.submissionsProcessed.Add(float64(n))
}

// UpdateTeamsTotal sets the distinct team gauge.
func UpdateTeamsTotal(count int) {
	globalManager.teamsTotal.Set(float64(count))
}

// UpdateMonthsConfigured sets the configured month gauge.
func UpdateMonthsConfigured(count int) {
	globalManager.monthsConfigured.Set(float64(count))
}

// RecordAggregationDuration observes a full aggregation duration.
func RecordAggregationDuration(latencyMs float64) {
	globalManager.aggregationDuration.Observe(latencyMs)
}

// RecordSnapshotRefresh records a completed snapshot refresh.
func RecordSnapshotRefresh(durationMs float64) {
	globalManager.snapshotRefreshes.Inc()
	globalManager.snapshotLastUnix.Set(float64(time.Now().Unix()))
	globalManager.snapshotDuration.Observe(durationMs)
}

// RecordWatcherEvent increments the watcher event counter.
func RecordWatcherEvent() {
	globalManager.watcherEvents.Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the heap memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry metrics are served from.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
