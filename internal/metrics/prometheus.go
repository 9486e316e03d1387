package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the tracker service

var (
	// Feed call metrics
	FeedCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportstracker_feed_calls_total",
			Help: "Total number of upstream feed calls",
		},
		[]string{"feed", "endpoint", "status"},
	)

	FeedCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportstracker_feed_call_duration_seconds",
			Help:    "Duration of upstream feed calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed", "endpoint"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportstracker_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportstracker_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportstracker_cache_operation_duration_seconds",
			Help:    "Duration of cache operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// Refresh metrics
	RefreshOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportstracker_refresh_operations_total",
			Help: "Total number of board refresh operations",
		},
		[]string{"status"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sportstracker_refresh_duration_seconds",
			Help:    "Duration of full board refresh cycles in seconds",
			Buckets: []float64{.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	RowsBuilt = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sportstracker_rows_built",
			Help: "Number of display rows on the latest board",
		},
		[]string{"tracker"},
	)

	RowsWithOdds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sportstracker_rows_with_odds",
			Help: "Number of display rows with market data attached on the latest board",
		},
		[]string{"tracker"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportstracker_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sportstracker_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sportstracker_last_successful_refresh_timestamp",
			Help: "Timestamp of last successful refresh cycle",
		},
	)
)

// RecordFeedCall records an upstream feed call
func RecordFeedCall(feed, endpoint, status string, duration float64) {
	FeedCallsTotal.WithLabelValues(feed, endpoint, status).Inc()
	FeedCallDuration.WithLabelValues(feed, endpoint).Observe(duration)
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordCacheOperation records a cache operation duration
func RecordCacheOperation(operation string, duration float64) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordRefresh records a refresh cycle
func RecordRefresh(status string, duration float64) {
	RefreshOperationsTotal.WithLabelValues(status).Inc()
	RefreshDuration.Observe(duration)

	if status == "success" {
		LastSuccessfulRefresh.SetToCurrentTime()
	}
}

// RecordBoard records the row counts of a freshly built board
func RecordBoard(tracker string, rows, withOdds int) {
	RowsBuilt.WithLabelValues(tracker).Set(float64(rows))
	RowsWithOdds.WithLabelValues(tracker).Set(float64(withOdds))
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
