package metrics

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/prometheus/client_golang/prometheus"
)

// LiveStatsMetrics is the prometheus implementation of the subscription
// bus Metrics interface.
type LiveStatsMetrics struct {
	subscribers      prometheus.Gauge
	notifications    prometheus.Counter
	snapshotFailures prometheus.Counter
}

// NewLiveStatsMetrics registers and returns subscription bus metrics.
func NewLiveStatsMetrics(registry *prometheus.Registry) *LiveStatsMetrics {
	m := &LiveStatsMetrics{
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "livestats_active_subscriptions",
			Help: "Currently active live stat subscriptions.",
		}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "livestats_notifications_total",
			Help: "Snapshot notifications fanned out to subscribers.",
		}),
		snapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "livestats_snapshot_failures_total",
			Help: "Aggregate recomputations that failed during live push.",
		}),
	}
	registry.MustRegister(m.subscribers, m.notifications, m.snapshotFailures)
	return m
}

func (m *LiveStatsMetrics) RecordSubscribe(ctx context.Context)   { m.subscribers.Inc() }
func (m *LiveStatsMetrics) RecordUnsubscribe(ctx context.Context) { m.subscribers.Dec() }

func (m *LiveStatsMetrics) RecordNotification(ctx context.Context, matchID sharedtypes.MatchID) {
	m.notifications.Inc()
}

func (m *LiveStatsMetrics) RecordSnapshotFailure(ctx context.Context, matchID sharedtypes.MatchID) {
	m.snapshotFailures.Inc()
}
