package matchhandlers

import (
	"context"
	"fmt"
	"log/slog"

	matchservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/application"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// Handlers processes match lifecycle events arriving on the bus.
type Handlers interface {
	HandleMatchStartRequested(msg *message.Message) ([]*message.Message, error)
	HandleMatchFinalizeRequested(msg *message.Message) ([]*message.Message, error)
	HandleMatchScoreUpdateRequested(msg *message.Message) ([]*message.Message, error)
}

// MatchHandlers handles match lifecycle requests.
type MatchHandlers struct {
	service matchservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
}

// NewMatchHandlers creates a new MatchHandlers.
func NewMatchHandlers(service matchservice.Service, logger *slog.Logger, tracer trace.Tracer, helpers utils.Helpers) Handlers {
	return &MatchHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
	}
}

// wrap decodes the payload into target and runs fn under a span.
func (h *MatchHandlers) wrap(handlerName string, msg *message.Message, target any, fn func(ctx context.Context) ([]*message.Message, error)) ([]*message.Message, error) {
	ctx, span := h.tracer.Start(msg.Context(), handlerName)
	defer span.End()

	h.logger.InfoContext(ctx, handlerName+" triggered",
		attr.CorrelationIDFromMsg(msg),
		attr.String("message_id", msg.UUID),
	)

	if err := h.helpers.UnmarshalPayload(msg, target); err != nil {
		h.logger.ErrorContext(ctx, "Failed to unmarshal payload",
			attr.CorrelationIDFromMsg(msg),
			attr.Error(err),
		)
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return fn(ctx)
}
