package matchrouter

import (
	"context"
	"fmt"
	"log/slog"

	matchevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/events"
	matchhandlers "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/handlers"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// MatchRouter wires match lifecycle handlers onto the module's watermill
// router.
type MatchRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	bus            eventbus.EventBus
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewMatchRouter creates a new MatchRouter.
func NewMatchRouter(logger *slog.Logger, router *message.Router, bus eventbus.EventBus, registry *prometheus.Registry) *MatchRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "", "")
		metricsBuilder = &builder
	}
	return &MatchRouter{
		logger:         logger,
		Router:         router,
		bus:            bus,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and registers the module's handlers.
func (r *MatchRouter) Configure(ctx context.Context, handlers matchhandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	eventsToHandlers := map[string]message.HandlerFunc{
		matchevents.MatchStartRequested:       handlers.HandleMatchStartRequested,
		matchevents.MatchFinalizeRequested:    handlers.HandleMatchFinalizeRequested,
		matchevents.MatchScoreUpdateRequested: handlers.HandleMatchScoreUpdateRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("match.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.bus.Subscriber(),
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get(utils.MetadataTopic)
					if publishTopic == "" {
						r.logger.ErrorContext(ctx, "Handler produced message without topic, dropping",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
						)
						continue
					}
					if err := r.bus.Publish(ctx, publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}
