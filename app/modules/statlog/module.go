package statlog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	statlogservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/application"
	statloghandlers "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/handlers"
	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	statlogrouter "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/router"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Module is the stat log module: the append-only event log and its bus
// surface.
type Module struct {
	Service    statlogservice.Service
	Router     *statlogrouter.StatLogRouter
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewModule wires the stat log service, handlers, and router.
func NewModule(
	ctx context.Context,
	repo statlogdb.Repository,
	matches statlogservice.MatchGuard,
	bus eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	metrics statlogservice.Metrics,
	tracer trace.Tracer,
	registry *prometheus.Registry,
) (*Module, error) {
	helpers := utils.NewHelpers()

	service := statlogservice.NewStatLogService(repo, matches, bus, helpers, logger, metrics, tracer)
	handlers := statloghandlers.NewStatLogHandlers(service, logger, tracer, helpers, metrics)

	statlogRouter := statlogrouter.NewStatLogRouter(logger, router, bus, registry)
	if err := statlogRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure statlog router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  statlogRouter,
		logger:  logger,
	}, nil
}

// Run starts the module's router and blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := m.Router.Router.Run(ctx); err != nil && ctx.Err() == nil {
			m.logger.Error("Statlog router stopped", slog.Any("error", err))
		}
	}()
}

// Close stops the module.
func (m *Module) Close() {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
}
