package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BoardOperations counts board operations by operation name and outcome
	// (success, not_found, no_permission, error).
	BoardOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bulletin_board_operations_total",
		Help: "Total number of board operations by operation and outcome",
	}, []string{"operation", "outcome"})

	// StoreOpLatency records keyed-store operation latency by operation and bucket.
	StoreOpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bulletin_store_operation_latency_seconds",
		Help:    "Keyed store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "bucket"})

	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bulletin_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheHits counts listing cache hits and misses.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bulletin_cache_requests_total",
		Help: "Listing cache requests by result (hit or miss)",
	}, []string{"result"})
)

// TrackStoreOp returns a function that records store operation latency when
// called (e.g. defer).
func TrackStoreOp(operation, bucket string) func() {
	start := time.Now()
	return func() {
		StoreOpLatency.WithLabelValues(operation, bucket).Observe(time.Since(start).Seconds())
	}
}

// RecordBoardOp increments the board operations counter.
func RecordBoardOp(operation, outcome string) {
	BoardOperations.WithLabelValues(operation, outcome).Inc()
}
