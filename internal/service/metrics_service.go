package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/batch-intake-api/internal/models"
)

// Submission outcomes recorded by RecordSubmission.
const (
	OutcomeAccepted         = "accepted"
	OutcomeInvalid          = "invalid"
	OutcomeBatchUnavailable = "batch_unavailable"
	OutcomeStoreError       = "store_error"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	cacheLatency      prometheus.Observer
	cacheWrite        prometheus.Observer
	cacheHitRatio     prometheus.Gauge
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	storeCallDuration *prometheus.HistogramVec
	submissions       *prometheus.CounterVec
	flagUpdates       *prometheus.CounterVec
	eventsPublished   *prometheus.CounterVec

	cacheHitCount          uint64
	cacheMissCount         uint64
	requestCount           uint64
	requestDurationTotal   uint64
	storeCallCount         uint64
	storeCallDurationTotal uint64
	acceptedCount          uint64
	rejectedCount          uint64
	flagUpdateCount        uint64
	eventsOKCount          uint64
	eventsFailedCount      uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	storeCallDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_call_duration_seconds",
		Help:    "Duration of record store calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "applications_submitted_total",
		Help: "Application submissions by outcome",
	}, []string{"outcome"})

	flagUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "candidate_flag_updates_total",
		Help: "Review flag updates by flag and value",
	}, []string{"flag", "value"})

	eventsPublished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Domain events handed to the broker by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		storeCallDuration, submissions, flagUpdates, eventsPublished, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		cacheLatency:      cacheLatency,
		cacheWrite:        cacheWrite,
		cacheHitRatio:     cacheHitRatio,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
		storeCallDuration: storeCallDuration,
		submissions:       submissions,
		flagUpdates:       flagUpdates,
		eventsPublished:   eventsPublished,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveStoreCall records the timing of one record store operation.
func (m *MetricsService) ObserveStoreCall(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
	atomic.AddUint64(&m.storeCallCount, 1)
	atomic.AddUint64(&m.storeCallDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordSubmission counts one intake attempt by outcome.
func (m *MetricsService) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeAccepted {
		atomic.AddUint64(&m.acceptedCount, 1)
	} else {
		atomic.AddUint64(&m.rejectedCount, 1)
	}
}

// RecordFlagUpdate counts one confirmed flag update.
func (m *MetricsService) RecordFlagUpdate(flag models.CandidateFlag, value bool) {
	if m == nil {
		return
	}
	m.flagUpdates.WithLabelValues(string(flag), fmt.Sprintf("%t", value)).Inc()
	atomic.AddUint64(&m.flagUpdateCount, 1)
}

// RecordEventPublish counts one broker write attempt.
func (m *MetricsService) RecordEventPublish(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.eventsPublished.WithLabelValues("ok").Inc()
		atomic.AddUint64(&m.eventsOKCount, 1)
		return
	}
	m.eventsPublished.WithLabelValues("error").Inc()
	atomic.AddUint64(&m.eventsFailedCount, 1)
}

// Snapshot returns aggregated metrics suitable for the admin system endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	storeCount := atomic.LoadUint64(&m.storeCallCount)
	storeDuration := atomic.LoadUint64(&m.storeCallDurationTotal)

	var cacheRatio float64
	totalLookups := hits + misses
	if totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgStoreMs float64
	if storeCount > 0 {
		avgStoreMs = float64(storeDuration) / float64(storeCount) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:              requests,
		AverageRequestDurationMs:   avgRequestMs,
		CacheHits:                  hits,
		CacheMisses:                misses,
		CacheHitRatio:              cacheRatio,
		StoreCallCount:             storeCount,
		AverageStoreCallDurationMs: avgStoreMs,
		SubmissionsAccepted:        atomic.LoadUint64(&m.acceptedCount),
		SubmissionsRejected:        atomic.LoadUint64(&m.rejectedCount),
		FlagUpdates:                atomic.LoadUint64(&m.flagUpdateCount),
		EventsPublished:            atomic.LoadUint64(&m.eventsOKCount),
		EventsFailed:               atomic.LoadUint64(&m.eventsFailedCount),
		Goroutines:                 runtime.NumGoroutine(),
		GeneratedAt:                time.Now().UTC(),
	}
}
