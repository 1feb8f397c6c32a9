// Package metrics provides Prometheus metrics for the concert itinerary builder.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the itinerary service.
type Manager struct {
	namespace      string
	subsystem      string
	buildBuckets   []float64
	latencyBuckets []float64
	enabled        bool
	registry       prometheus.Registerer

	// Itinerary construction
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	length        prometheus.Gauge
	conflicts     *prometheus.CounterVec
	replacements  *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Activity log
	testRuns    *prometheus.CounterVec
	coverage    prometheus.Gauge
	taskMinutes *prometheus.CounterVec
	storeErrors *prometheus.CounterVec

	// Test run jobs
	jobQueueDepth prometheus.Gauge
	jobsRejected  *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "concerts",
		subsystem:      "itinerary",
		buildBuckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
		latencyBuckets: prometheus.ExponentialBuckets(1, 4, 10),
		enabled:        true,
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.builds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "builds_total",
		Help:      "Total number of itinerary builds by result kind",
	}, []string{"result"})

	m.buildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_duration_milliseconds",
		Help:      "Histogram of itinerary build time in milliseconds",
		Buckets:   m.buildBuckets,
	})

	m.length = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "length",
		Help:      "Number of concerts in the most recently built itinerary",
	})

	m.conflicts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conflicts_total",
		Help:      "Same-day conflicts evaluated, by resolution rule",
	}, []string{"rule"})

	m.replacements = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replacements_total",
		Help:      "Same-day conflicts where the challenger displaced the incumbent, by rule",
	}, []string{"rule"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.latencyBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.testRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "test_runs_total",
		Help:      "Test suite runs by outcome",
	}, []string{"outcome"})

	m.coverage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "test_coverage_percent",
		Help:      "Statement coverage of the most recent test run",
	})

	m.taskMinutes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "task_minutes_total",
		Help:      "Minutes recorded against each experiment task",
	}, []string{"task"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "activity_log_errors_total",
		Help:      "Activity log read/write failures by operation",
	}, []string{"op"})

	m.jobQueueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "test_job_queue_depth",
		Help:      "Test run jobs waiting for a worker",
	})

	m.jobsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "test_jobs_rejected_total",
		Help:      "Test run jobs refused by the queue, by reason",
	}, []string{"reason"})

	m.jobDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "test_job_duration_milliseconds",
		Help:      "Time from dequeue to completion of a test run job",
		Buckets:   m.latencyBuckets,
	}, []string{"outcome"})
}

// RecordBuild records one builder invocation.
func (m *Manager) RecordBuild(result string, durationMs float64, length int) {
	if !m.enabled {
		return
	}
	m.builds.WithLabelValues(result).Inc()
	m.buildDuration.Observe(durationMs)
	m.length.Set(float64(length))
}

// RecordConflict records a same-day conflict, and whether it caused a replacement.
func (m *Manager) RecordConflict(rule string, replaced bool) {
	if !m.enabled {
		return
	}
	m.conflicts.WithLabelValues(rule).Inc()
	if replaced {
		m.replacements.WithLabelValues(rule).Inc()
	}
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordTestRun records a test suite run and its coverage percentage.
func (m *Manager) RecordTestRun(success bool, coveragePct float64) {
	if !m.enabled {
		return
	}
	outcome := "failed"
	if success {
		outcome = "passed"
	}
	m.testRuns.WithLabelValues(outcome).Inc()
	m.coverage.Set(coveragePct)
}

// RecordTaskMinutes adds minutes spent on a task.
func (m *Manager) RecordTaskMinutes(task string, minutes float64) {
	if !m.enabled || minutes < 0 {
		return
	}
	m.taskMinutes.WithLabelValues(task).Add(minutes)
}

// RecordStoreError counts an activity log failure.
func (m *Manager) RecordStoreError(op string) {
	if !m.enabled {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

// UpdateJobQueueDepth sets the number of queued test run jobs.
func (m *Manager) UpdateJobQueueDepth(depth int) {
	if !m.enabled {
		return
	}
	m.jobQueueDepth.Set(float64(depth))
}

// RecordJobRejected counts a job the queue refused.
func (m *Manager) RecordJobRejected(reason string) {
	if !m.enabled {
		return
	}
	m.jobsRejected.WithLabelValues(reason).Inc()
}

// RecordJobFinished records a processed job and how long it took.
func (m *Manager) RecordJobFinished(outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.jobDuration.WithLabelValues(outcome).Observe(durationMs)
}

// Global helpers operating on the default manager.

// RecordBuild records a build on the global manager.
func RecordBuild(result string, durationMs float64, length int) {
	globalManager.RecordBuild(result, durationMs, length)
}

// RecordConflict records a conflict on the global manager.
func RecordConflict(rule string, replaced bool) {
	globalManager.RecordConflict(rule, replaced)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordTestRun records a test run on the global manager.
func RecordTestRun(success bool, coveragePct float64) {
	globalManager.RecordTestRun(success, coveragePct)
}

// RecordTaskMinutes records task minutes on the global manager.
func RecordTaskMinutes(task string, minutes float64) {
	globalManager.RecordTaskMinutes(task, minutes)
}

// RecordStoreError records an activity log failure on the global manager.
func RecordStoreError(op string) {
	globalManager.RecordStoreError(op)
}

// UpdateJobQueueDepth sets the job queue depth on the global manager.
func UpdateJobQueueDepth(depth int) {
	globalManager.UpdateJobQueueDepth(depth)
}

// RecordJobRejected records a rejected job on the global manager.
func RecordJobRejected(reason string) {
	globalManager.RecordJobRejected(reason)
}

// RecordJobFinished records a finished job on the global manager.
func RecordJobFinished(outcome string, durationMs float64) {
	globalManager.RecordJobFinished(outcome, durationMs)
}

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom metrics registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
