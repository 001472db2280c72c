package statlogservice

import (
	"context"

	statlogevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/events"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// publishRecorded announces an appended event on the bus. A publish
// failure is logged but does not fail the append; the log row is already
// durable and readers recompute from it.
func (s *StatLogService) publishRecorded(ctx context.Context, event sharedtypes.StatEvent, position sharedtypes.LogPosition) {
	payload := statlogevents.StatRecordedPayload{
		Event:    event,
		Position: position,
	}

	msg, err := s.helpers.CreateNewMessage(payload, statlogevents.StatRecorded)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build stat recorded message",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", event.MatchID),
			attr.Error(err),
		)
		return
	}

	if err := s.eventBus.Publish(ctx, statlogevents.StatRecorded, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish stat recorded event",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", event.MatchID),
			attr.Error(err),
		)
	}
}
