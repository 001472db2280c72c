package statloghandlers

import (
	"context"
	"errors"
	"fmt"

	statlogservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/application"
	statlogevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/events"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleStatRecordRequested appends the requested stat event. Business
// rejections (locked match, malformed event) are answered with a failure
// event so the tracker sees the lost action; infrastructure errors are
// returned for retry.
func (h *StatLogHandlers) HandleStatRecordRequested(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleStatRecordRequested",
		&statlogevents.StatRecordRequestedPayload{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			requestPayload := payload.(*statlogevents.StatRecordRequestedPayload)
			event := requestPayload.Event

			_, err := h.service.Append(ctx, event)
			if err == nil {
				// The service already published the recorded event.
				return nil, nil
			}

			reason := appendFailureReason(err)
			if reason == "" {
				// Transient storage or lookup failure; let the router retry.
				return nil, fmt.Errorf("failed to append stat event: %w", err)
			}

			h.logger.InfoContext(ctx, "Stat record request rejected",
				attr.CorrelationIDFromMsg(msg),
				attr.MatchID("match_id", event.MatchID),
				attr.String("reason", reason),
			)

			failureMsg, createErr := h.helpers.CreateResultMessage(
				msg,
				&statlogevents.StatRecordFailedPayload{
					MatchID:  event.MatchID,
					PlayerID: event.PlayerID,
					StatName: event.StatName,
					Reason:   reason,
				},
				statlogevents.StatRecordFailed,
			)
			if createErr != nil {
				return nil, fmt.Errorf("failed to create failure message: %w", createErr)
			}

			return []*message.Message{failureMsg}, nil
		},
	)

	return wrappedHandler(msg)
}

// appendFailureReason maps business rejections to wire reasons. Transient
// errors map to "".
func appendFailureReason(err error) string {
	switch {
	case errors.Is(err, statlogservice.ErrMatchLocked):
		return "MatchLocked"
	case statlogservice.IsValidationError(err):
		return "ValidationError"
	default:
		return ""
	}
}
