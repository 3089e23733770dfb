// Package metrics defines the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Overdue sweep metrics
var (
	// SweepRunsTotal counts sweep executions by outcome (canceled/empty/error)
	SweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overdue_sweep_runs_total",
			Help: "Total overdue sweep runs by outcome",
		},
		[]string{"outcome"},
	)

	// SweepCanceledSessionsTotal counts sessions canceled by the sweep
	SweepCanceledSessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "overdue_sweep_canceled_sessions_total",
			Help: "Total sessions canceled by the overdue sweep",
		},
	)

	// SweepDurationSeconds tracks sweep run duration
	SweepDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "overdue_sweep_duration_seconds",
			Help:    "Overdue sweep run duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)

// Cache metrics
var (
	// CacheHitsTotal counts cache hits by tag
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits by tag",
		},
		[]string{"tag"},
	)

	// CacheMissesTotal counts cache misses by tag
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses by tag",
		},
		[]string{"tag"},
	)

	// CacheInvalidationsTotal counts invalidated entries by tag
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total cache entries removed by invalidation, by tag",
		},
		[]string{"tag"},
	)
)

// Redis client metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Reservation metrics
var (
	// ReservationConflictsTotal counts rejected reservations due to slot conflicts
	ReservationConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservation_conflicts_total",
			Help: "Total reservation attempts rejected because the slot was taken",
		},
	)

	// SessionNumberRewritesTotal counts session-number rows rewritten by renumbering
	SessionNumberRewritesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_number_rewrites_total",
			Help: "Total session rows whose number was rewritten by a renumbering pass",
		},
	)
)
