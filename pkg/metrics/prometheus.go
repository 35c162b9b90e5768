// Package metrics provides Prometheus metrics for the hooprank service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the service.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Pipeline metrics - one recompute of all models is a "run".
	pipelineRuns        prometheus.Counter
	pipelineRunErrors   prometheus.Counter
	pipelineRunDuration prometheus.Histogram
	rowsLoaded          *prometheus.GaugeVec
	modelEvalDuration   *prometheus.HistogramVec
	entitiesRanked      *prometheus.GaugeVec
	lastRunUnix         prometheus.Gauge

	// Scrape metrics
	scrapeRequests prometheus.Counter
	scrapeErrors   prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry backing the singleton

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "hooprank",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.pipelineRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pipeline_runs_total",
		Help:      "Number of ranking pipeline recomputations.",
	})
	m.pipelineRunErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pipeline_run_errors_total",
		Help:      "Number of failed ranking pipeline recomputations.",
	})
	m.pipelineRunDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "pipeline_run_duration_ms",
		Help:      "Duration of a full pipeline recomputation in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
	m.rowsLoaded = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "rows_loaded",
		Help:      "Rows loaded from each input table on the last run.",
	}, []string{"table"})
	m.modelEvalDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "model_eval_duration_ms",
		Help:      "Duration of a single model evaluation in milliseconds.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
	}, []string{"model"})
	m.entitiesRanked = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "entities_ranked",
		Help:      "Entities in each ranking board after the last run.",
	}, []string{"board"})
	m.lastRunUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "pipeline_last_run_unix",
		Help:      "Unix timestamp of the last successful pipeline run.",
	})

	m.scrapeRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "scrape_requests_total",
		Help:      "HTML pages fetched by the scraper.",
	})
	m.scrapeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "scrape_errors_total",
		Help:      "Scraper fetch or parse failures (logged and skipped).",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})
	m.httpErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint and error type.",
	}, []string{"endpoint", "error_type"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_memory_bytes",
		Help:      "Heap bytes currently allocated.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_goroutines",
		Help:      "Number of live goroutines.",
	})
}

// Package-level helpers operating on the global manager.

func RecordPipelineRun()                  { globalManager.pipelineRuns.Inc() }
func RecordPipelineRunError()             { globalManager.pipelineRunErrors.Inc() }
func RecordPipelineRunDuration(ms float64) { globalManager.pipelineRunDuration.Observe(ms) }

func UpdateRowsLoaded(table string, n int) {
	globalManager.rowsLoaded.WithLabelValues(table).Set(float64(n))
}

func RecordModelEvalDuration(model string, ms float64) {
	globalManager.modelEvalDuration.WithLabelValues(model).Observe(ms)
}

func UpdateEntitiesRanked(board string, n int) {
	globalManager.entitiesRanked.WithLabelValues(board).Set(float64(n))
}

func UpdateLastRunUnix(ts int64) { globalManager.lastRunUnix.Set(float64(ts)) }

func RecordScrapeRequest() { globalManager.scrapeRequests.Inc() }
func RecordScrapeError()   { globalManager.scrapeErrors.Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordHTTPError(endpoint, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, errorType).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry exposes the custom registry for the /healthz metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
