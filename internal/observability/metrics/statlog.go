package metrics

import (
	"context"
	"time"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/prometheus/client_golang/prometheus"
)

// StatLogMetrics is the prometheus implementation of the stat log
// module's Metrics interface.
type StatLogMetrics struct {
	appendAttempts    *prometheus.CounterVec
	appendSuccesses   *prometheus.CounterVec
	appendFailures    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewStatLogMetrics registers and returns stat log metrics.
func NewStatLogMetrics(registry *prometheus.Registry) *StatLogMetrics {
	m := &StatLogMetrics{
		appendAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statlog_append_attempts_total",
			Help: "Stat event append attempts.",
		}, []string{}),
		appendSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statlog_append_successes_total",
			Help: "Successfully appended stat events by kind.",
		}, []string{"stat_kind"}),
		appendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statlog_append_failures_total",
			Help: "Rejected or failed stat event appends by reason.",
		}, []string{"reason"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "statlog_operation_duration_seconds",
			Help:    "Stat log operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	registry.MustRegister(m.appendAttempts, m.appendSuccesses, m.appendFailures, m.operationDuration)
	return m
}

func (m *StatLogMetrics) RecordAppendAttempt(ctx context.Context, matchID sharedtypes.MatchID) {
	m.appendAttempts.WithLabelValues().Inc()
}

func (m *StatLogMetrics) RecordAppendSuccess(ctx context.Context, matchID sharedtypes.MatchID, kind sharedtypes.StatKind) {
	m.appendSuccesses.WithLabelValues(string(kind)).Inc()
}

func (m *StatLogMetrics) RecordAppendFailure(ctx context.Context, matchID sharedtypes.MatchID, reason string) {
	m.appendFailures.WithLabelValues(reason).Inc()
}

func (m *StatLogMetrics) RecordOperationDuration(ctx context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
