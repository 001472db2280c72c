package match

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	matchservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/application"
	matchhandlers "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/handlers"
	matchqueue "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/queue"
	matchdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/repositories"
	matchrouter "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/router"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module is the match lifecycle module: the lock state machine, the
// admin-gated unlock, and scheduled activation.
type Module struct {
	Service    matchservice.Service
	Queue      *matchqueue.Service
	Router     *matchrouter.MatchRouter
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewModule wires the match service, activation queue, handlers, and
// router. dsn may be empty to run without scheduled activation (tests).
func NewModule(
	ctx context.Context,
	repo matchdb.Repository,
	verifier matchservice.CredentialVerifier,
	bunDB *bun.DB,
	dsn string,
	bus eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	metrics matchservice.Metrics,
	tracer trace.Tracer,
	registry *prometheus.Registry,
) (*Module, error) {
	helpers := utils.NewHelpers()

	var queue *matchqueue.Service
	var scheduler matchservice.ActivationScheduler
	if dsn != "" {
		var err error
		queue, err = matchqueue.NewService(ctx, bunDB, dsn, logger, bus)
		if err != nil {
			return nil, fmt.Errorf("failed to create match activation queue: %w", err)
		}
		scheduler = queue
	}

	service := matchservice.NewMatchService(repo, verifier, scheduler, bus, helpers, logger, metrics, tracer)
	handlers := matchhandlers.NewMatchHandlers(service, logger, tracer, helpers)

	matchRouter := matchrouter.NewMatchRouter(logger, router, bus, registry)
	if err := matchRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure match router: %w", err)
	}

	return &Module{
		Service: service,
		Queue:   queue,
		Router:  matchRouter,
		logger:  logger,
	}, nil
}

// Run starts the router and queue workers until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel

	if m.Queue != nil {
		if err := m.Queue.Start(ctx); err != nil {
			m.logger.Error("Failed to start match activation queue", slog.Any("error", err))
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := m.Router.Router.Run(ctx); err != nil && ctx.Err() == nil {
			m.logger.Error("Match router stopped", slog.Any("error", err))
		}
	}()
}

// Close stops the module.
func (m *Module) Close() {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if m.Queue != nil {
		if err := m.Queue.Stop(context.Background()); err != nil {
			m.logger.Error("Failed to stop match activation queue", slog.Any("error", err))
		}
	}
}
