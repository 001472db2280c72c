package metrics

import (
	"context"
	"time"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/prometheus/client_golang/prometheus"
)

// MatchMetrics is the prometheus implementation of the match module's
// Metrics interface.
type MatchMetrics struct {
	transitions       *prometheus.CounterVec
	unlockAttempts    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewMatchMetrics registers and returns match lifecycle metrics.
func NewMatchMetrics(registry *prometheus.Registry) *MatchMetrics {
	m := &MatchMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_status_transitions_total",
			Help: "Match status transitions by edge.",
		}, []string{"from", "to"}),
		unlockAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_unlock_attempts_total",
			Help: "Admin unlock attempts by outcome.",
		}, []string{"outcome"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "match_operation_duration_seconds",
			Help:    "Match service operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	registry.MustRegister(m.transitions, m.unlockAttempts, m.operationDuration)
	return m
}

func (m *MatchMetrics) RecordTransition(ctx context.Context, from, to sharedtypes.MatchStatus) {
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *MatchMetrics) RecordUnlockAttempt(ctx context.Context, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.unlockAttempts.WithLabelValues(outcome).Inc()
}

func (m *MatchMetrics) RecordOperationDuration(ctx context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
