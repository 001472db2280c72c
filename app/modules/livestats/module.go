package livestats

import (
	"context"
	"log/slog"
	"sync"

	statsservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/stats/application"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
)

// Module is the live subscription bus module.
type Module struct {
	Bus        *Bus
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewModule wires the subscription bus.
func NewModule(
	stats statsservice.Service,
	bus eventbus.EventBus,
	logger *slog.Logger,
	metrics Metrics,
) *Module {
	return &Module{
		Bus:    NewBus(stats, bus, utils.NewHelpers(), logger, metrics),
		logger: logger,
	}
}

// Run starts consuming recorded stat events until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := m.Bus.Run(ctx); err != nil && ctx.Err() == nil {
			m.logger.Error("Live stats bus stopped", slog.Any("error", err))
		}
	}()
}

// Close stops the module.
func (m *Module) Close() {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
}
