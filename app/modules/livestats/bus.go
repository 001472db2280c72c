package livestats

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	statsservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/stats/application"
	livestatsevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/livestats/events"
	statlogevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/events"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

const subscriberQueueSize = 64

// Metrics records subscription bus activity.
type Metrics interface {
	RecordSubscribe(ctx context.Context)
	RecordUnsubscribe(ctx context.Context)
	RecordNotification(ctx context.Context, matchID sharedtypes.MatchID)
	RecordSnapshotFailure(ctx context.Context, matchID sharedtypes.MatchID)
}

// Bus pushes recomputed aggregates to in-process subscribers and
// republishes them for remote scoreboards. Snapshots are always full
// recomputations from the stat log, so delivery is idempotent and
// at-least-once is safe.
type Bus struct {
	stats    statsservice.Service
	eventBus eventbus.EventBus
	helpers  utils.Helpers
	logger   *slog.Logger
	metrics  Metrics

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewBus creates a subscription bus.
func NewBus(stats statsservice.Service, eventBus eventbus.EventBus, helpers utils.Helpers, logger *slog.Logger, metrics Metrics) *Bus {
	return &Bus{
		stats:    stats,
		eventBus: eventBus,
		helpers:  helpers,
		logger:   logger,
		metrics:  metrics,
		subs:     make(map[*Subscription]struct{}),
	}
}

// Subscribe registers fn for topic. The callback fires immediately with
// the current aggregate (all-zero when the log is empty), then once per
// relevant append. The returned handle stops delivery when released.
func (b *Bus) Subscribe(ctx context.Context, topic Topic, fn Callback) (*Subscription, error) {
	initial, err := b.initialSnapshot(ctx, topic)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		topic:  topic,
		fn:     fn,
		queue:  make(chan sharedtypes.PlayerStats, subscriberQueueSize),
		done:   make(chan struct{}),
		detach: b.detach,
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	b.metrics.RecordSubscribe(ctx)

	sub.enqueue(initial)
	go sub.deliver()

	return sub, nil
}

// initialSnapshot resolves the aggregate a new subscriber sees first. A
// match-wide topic has no single player to summarize, so it starts from an
// all-zero snapshot; player updates follow as events arrive.
func (b *Bus) initialSnapshot(ctx context.Context, topic Topic) (sharedtypes.PlayerStats, error) {
	if topic.PlayerID == "" {
		return sharedtypes.NewPlayerStats(topic.MatchID, "", 0), nil
	}
	return b.stats.GetPlayerStats(ctx, topic.MatchID, topic.PlayerID, 0)
}

func (b *Bus) detach(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
	b.metrics.RecordUnsubscribe(context.Background())
}

// Run consumes recorded stat events and fans out snapshots until ctx is
// canceled.
func (b *Bus) Run(ctx context.Context) error {
	messages, err := b.eventBus.Subscribe(ctx, statlogevents.StatRecorded)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.handleRecorded(ctx, msg.Payload)
			msg.Ack()
		}
	}
}

// handleRecorded recomputes the affected player's aggregate and notifies
// matching subscribers. A log read failure is logged and skipped; the next
// append delivers a correct full snapshot, and zero values are never
// fabricated from a failed read.
func (b *Bus) handleRecorded(ctx context.Context, payload []byte) {
	var recorded statlogevents.StatRecordedPayload
	if err := json.Unmarshal(payload, &recorded); err != nil {
		b.logger.ErrorContext(ctx, "Failed to decode stat recorded event",
			attr.Error(err),
		)
		return
	}

	event := recorded.Event
	stats, err := b.stats.GetPlayerStats(ctx, event.MatchID, event.PlayerID, 0)
	if err != nil {
		b.metrics.RecordSnapshotFailure(ctx, event.MatchID)
		b.logger.ErrorContext(ctx, "Failed to recompute aggregate for live push",
			attr.MatchID("match_id", event.MatchID),
			attr.PlayerID("player_id", event.PlayerID),
			attr.Error(err),
		)
		return
	}

	b.mu.Lock()
	matching := make([]*Subscription, 0, len(b.subs))
	for sub := range b.subs {
		if sub.topic.Matches(event.MatchID, event.PlayerID) {
			matching = append(matching, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range matching {
		sub.enqueue(stats)
	}

	b.metrics.RecordNotification(ctx, event.MatchID)
	b.republish(ctx, stats)
}

// republish pushes the snapshot onto the event bus for remote scoreboard
// consumers.
func (b *Bus) republish(ctx context.Context, stats sharedtypes.PlayerStats) {
	payload := livestatsevents.SnapshotUpdatedPayload{
		Stats:       stats,
		TotalPoints: statsservice.TotalPoints(stats),
		TotalFaults: statsservice.TotalFaults(stats),
	}

	msg, err := b.helpers.CreateNewMessage(payload, livestatsevents.SnapshotUpdated)
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to build snapshot message", attr.Error(err))
		return
	}
	if err := b.eventBus.Publish(ctx, livestatsevents.SnapshotUpdated, msg); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish snapshot update",
			attr.MatchID("match_id", stats.MatchID),
			attr.Error(err),
		)
	}
}
