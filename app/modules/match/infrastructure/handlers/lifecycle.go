package matchhandlers

import (
	"context"
	"errors"
	"fmt"

	matchservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/application"
	matchevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/events"
	matchdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/repositories"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleMatchStartRequested activates a scheduled match, usually on behalf
// of the activation queue.
func (h *MatchHandlers) HandleMatchStartRequested(msg *message.Message) ([]*message.Message, error) {
	payload := &matchevents.MatchStartRequestedPayload{}
	return h.wrap("HandleMatchStartRequested", msg, payload, func(ctx context.Context) ([]*message.Message, error) {
		err := h.service.StartMatch(ctx, payload.MatchID)
		if err == nil {
			return nil, nil
		}
		if errors.Is(err, matchservice.ErrInvalidTransition) {
			// Already active or finalized ahead of the queued start.
			h.logger.InfoContext(ctx, "Skipping queued start, match moved on",
				attr.CorrelationIDFromMsg(msg),
				attr.MatchID("match_id", payload.MatchID),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to start match %d: %w", payload.MatchID, err)
	})
}

// HandleMatchFinalizeRequested finalizes an active match.
func (h *MatchHandlers) HandleMatchFinalizeRequested(msg *message.Message) ([]*message.Message, error) {
	payload := &matchevents.MatchFinalizeRequestedPayload{}
	return h.wrap("HandleMatchFinalizeRequested", msg, payload, func(ctx context.Context) ([]*message.Message, error) {
		err := h.service.FinalizeMatch(ctx, payload.MatchID)
		if err == nil {
			return nil, nil
		}
		if reason := rejectionReason(err); reason != "" {
			return h.failureMessage(msg, payload.MatchID, reason)
		}
		return nil, fmt.Errorf("failed to finalize match %d: %w", payload.MatchID, err)
	})
}

// HandleMatchScoreUpdateRequested updates the live score of a match.
func (h *MatchHandlers) HandleMatchScoreUpdateRequested(msg *message.Message) ([]*message.Message, error) {
	payload := &matchevents.MatchScoreUpdateRequestedPayload{}
	return h.wrap("HandleMatchScoreUpdateRequested", msg, payload, func(ctx context.Context) ([]*message.Message, error) {
		err := h.service.UpdateScore(ctx, payload.MatchID, payload.ScoreA, payload.ScoreB, payload.CurrentSet)
		if err == nil {
			return nil, nil
		}
		if reason := rejectionReason(err); reason != "" {
			return h.failureMessage(msg, payload.MatchID, reason)
		}
		return nil, fmt.Errorf("failed to update score for match %d: %w", payload.MatchID, err)
	})
}

func (h *MatchHandlers) failureMessage(msg *message.Message, matchID sharedtypes.MatchID, reason string) ([]*message.Message, error) {
	failureMsg, err := h.helpers.CreateResultMessage(
		msg,
		&matchevents.MatchUpdateFailedPayload{MatchID: matchID, Reason: reason},
		matchevents.MatchUpdateFailed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failure message: %w", err)
	}
	return []*message.Message{failureMsg}, nil
}

// rejectionReason maps business rejections to wire reasons; transient
// errors map to "".
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, matchservice.ErrMatchLocked):
		return "MatchLocked"
	case errors.Is(err, matchservice.ErrInvalidTransition):
		return "InvalidTransition"
	case errors.Is(err, matchservice.ErrInvalidScore):
		return "ValidationError"
	case errors.Is(err, matchdb.ErrMatchNotFound):
		return "MatchNotFound"
	default:
		return ""
	}
}
