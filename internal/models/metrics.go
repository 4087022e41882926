package models

import "time"

// SystemMetrics is a point-in-time summary of process counters.
type SystemMetrics struct {
	RequestsTotal              uint64    `json:"requests_total"`
	AverageRequestDurationMs   float64   `json:"average_request_duration_ms"`
	CacheHits                  uint64    `json:"cache_hits"`
	CacheMisses                uint64    `json:"cache_misses"`
	CacheHitRatio              float64   `json:"cache_hit_ratio"`
	StoreCallCount             uint64    `json:"store_call_count"`
	AverageStoreCallDurationMs float64   `json:"average_store_call_duration_ms"`
	SubmissionsAccepted        uint64    `json:"submissions_accepted"`
	SubmissionsRejected        uint64    `json:"submissions_rejected"`
	FlagUpdates                uint64    `json:"flag_updates"`
	EventsPublished            uint64    `json:"events_published"`
	EventsFailed               uint64    `json:"events_failed"`
	Goroutines                 int       `json:"goroutines"`
	GeneratedAt                time.Time `json:"generated_at"`
}
