package statlogrouter

import (
	"context"
	"fmt"
	"log/slog"

	statloghandlers "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/handlers"
	statlogevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/events"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// StatLogRouter wires stat log handlers onto the shared watermill router.
type StatLogRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	bus            eventbus.EventBus
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewStatLogRouter creates a new StatLogRouter.
func NewStatLogRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	registry *prometheus.Registry,
) *StatLogRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "", "")
		metricsBuilder = &builder
	}
	return &StatLogRouter{
		logger:         logger,
		Router:         router,
		bus:            bus,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and registers the module's handlers.
func (r *StatLogRouter) Configure(ctx context.Context, handlers statloghandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	return r.registerHandlers(ctx, handlers)
}

func (r *StatLogRouter) registerHandlers(ctx context.Context, handlers statloghandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		statlogevents.StatRecordRequested: handlers.HandleStatRecordRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("statlog.%s", topic)
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
