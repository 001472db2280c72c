package matchqueue

import (
	"context"
	"fmt"
	"log/slog"

	matchevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/events"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"github.com/riverqueue/river"
)

// MatchStartWorker fires when a match's start time arrives. It publishes a
// start request on the bus; the match handlers perform the transition so
// the state machine stays in one place.
type MatchStartWorker struct {
	river.WorkerDefaults[MatchStartJob]
	logger  *slog.Logger
	bus     eventbus.EventBus
	helpers utils.Helpers
}

// NewMatchStartWorker creates a new MatchStartWorker.
func NewMatchStartWorker(logger *slog.Logger, bus eventbus.EventBus, helpers utils.Helpers) *MatchStartWorker {
	return &MatchStartWorker{
		logger:  logger,
		bus:     bus,
		helpers: helpers,
	}
}

func (w *MatchStartWorker) Work(ctx context.Context, job *river.Job[MatchStartJob]) error {
	w.logger.InfoContext(ctx, "Match start time reached",
		attr.MatchID("match_id", job.Args.MatchID),
		attr.Int64("job_id", job.ID),
	)

	msg, err := w.helpers.CreateNewMessage(
		matchevents.MatchStartRequestedPayload{MatchID: job.Args.MatchID},
		matchevents.MatchStartRequested,
	)
	if err != nil {
		return fmt.Errorf("failed to build match start message: %w", err)
	}

	if err := w.bus.Publish(ctx, matchevents.MatchStartRequested, msg); err != nil {
		return fmt.Errorf("failed to publish match start request: %w", err)
	}
	return nil
}
