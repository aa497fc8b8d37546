// Package metrics defines Prometheus metrics for trolley.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trolley"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded, 0 otherwise.",
	})
)

// Cart optimizer metrics.
var (
	OptimizeRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "optimize_runs_total",
		Help:      "Total number of cart optimization runs.",
	})

	OptimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "optimize_duration_seconds",
		Help:      "Duration of cart optimization runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	OptimizeSavings = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "optimize_savings_dollars",
		Help:      "Distribution of computed savings per optimization run.",
		Buckets:   prometheus.LinearBuckets(0, 5, 11), // 0, 5, 10, ..., 50
	})
)

// Recipe matcher metrics.
var (
	MatchRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_runs_total",
		Help:      "Total number of recipe match runs.",
	})

	MatchResultsDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_results_count",
		Help:      "Distribution of matched recipe counts per match run.",
		Buckets:   prometheus.LinearBuckets(0, 1, 13), // 0..12 recipes
	})
)

// Scan simulator metrics.
var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Total number of simulated scans by mode.",
	}, []string{"mode"})

	ScanThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_throttled_total",
		Help:      "Total number of scans rejected by the rate limiter.",
	})
)

// State persistence metrics.
var (
	StateSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_saves_total",
		Help:      "Total number of successful state saves.",
	})

	StateSaveErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_save_errors_total",
		Help:      "Total number of failed state saves.",
	})
)

// Specials metrics, refreshed by the scheduled sweep.
var (
	SpecialsActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "specials_active",
		Help:      "Number of currently valid specials per store.",
	}, []string{"store"})

	SpecialsExpired = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "specials_expired",
		Help:      "Number of expired specials per store.",
	}, []string{"store"})
)
