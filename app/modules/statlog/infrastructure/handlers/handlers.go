package statloghandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	statlogservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/application"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// StatLogHandlers handles stat record requests from remote trackers.
type StatLogHandlers struct {
	service        statlogservice.Service
	logger         *slog.Logger
	tracer         trace.Tracer
	helpers        utils.Helpers
	metrics        statlogservice.Metrics
	handlerWrapper func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc
}

// NewStatLogHandlers creates a new StatLogHandlers.
func NewStatLogHandlers(
	service statlogservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics statlogservice.Metrics,
) Handlers {
	return &StatLogHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: metrics,
		handlerWrapper: func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc {
			return handlerWrapper(handlerName, unmarshalTo, handlerFunc, logger, tracer, helpers)
		},
	}
}

// handlerWrapper handles common tracing, logging, and payload decoding for
// handlers.
func handlerWrapper(
	handlerName string,
	unmarshalTo interface{},
	handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error),
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName)
		defer span.End()

		startTime := time.Now()
		defer func() {
			logger.DebugContext(ctx, handlerName+" finished",
				attr.CorrelationIDFromMsg(msg),
				attr.Duration("duration", time.Since(startTime)),
			)
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		if unmarshalTo != nil {
			if err := helpers.UnmarshalPayload(msg, unmarshalTo); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal payload",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		return handlerFunc(ctx, msg, unmarshalTo)
	}
}
