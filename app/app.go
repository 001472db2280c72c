package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/Bayview-Volleyball-Club/volley-tracker/api"
	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth"
	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/livestats"
	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/maintenance"
	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match"
	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog"
	statsservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/stats/application"
	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team"
	"github.com/Bayview-Volleyball-Club/volley-tracker/config"
	"github.com/Bayview-Volleyball-Club/volley-tracker/db/bundb"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/metrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// App wires the tracker's modules together.
type App struct {
	Config   *config.Config
	db       *bundb.DBService
	eventBus eventbus.EventBus
	registry *prometheus.Registry
	logger   *slog.Logger
	tracer   trace.Tracer

	StatLogModule     *statlog.Module
	StatsService      statsservice.Service
	LiveStatsModule   *livestats.Module
	MatchModule       *match.Module
	AuthModule        *auth.Module
	TeamModule        *team.Module
	MaintenanceModule *maintenance.Module
	APIServer         *api.Server

	routers       []*message.Router
	metricsServer *http.Server
	cancelFunc    context.CancelFunc
}

// Initialize sets up the database, event bus, and every module.
func (app *App) Initialize(ctx context.Context, cfg *config.Config) error {
	app.Config = cfg
	app.logger = newLogger(cfg)
	app.tracer = otel.Tracer("volley-tracker")

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := bundb.NewBunDBService(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database service: %w", err)
	}
	app.db = db

	if cfg.NATS.URL != "" {
		app.eventBus, err = eventbus.NewNatsEventBus(ctx, cfg.NATS.URL, app.logger)
		if err != nil {
			return fmt.Errorf("failed to connect event bus: %w", err)
		}
	} else {
		app.eventBus = eventbus.NewChannelEventBus(app.logger)
	}

	app.AuthModule = auth.NewModule(db.AdminDB, cfg.JWT.Secret, cfg.JWT.DefaultTTL, app.logger, app.tracer)
	app.TeamModule = team.NewModule(db.TeamDB, app.logger, app.tracer)
	app.MaintenanceModule = maintenance.NewModule(
		cfg.Downtime.SourceURL,
		cfg.Downtime.CacheTTL,
		cfg.Downtime.RefreshTimeout,
		app.logger,
	)

	app.StatsService = statsservice.NewStatsService(
		db.StatLogDB,
		statsservice.AggregatePolicy{ClampToZero: cfg.Stats.ClampToZero},
		app.logger,
		app.tracer,
	)

	statlogRouter, err := app.newRouter()
	if err != nil {
		return err
	}
	app.StatLogModule, err = statlog.NewModule(
		ctx,
		db.StatLogDB,
		db.MatchDB,
		app.eventBus,
		statlogRouter,
		app.logger,
		metrics.NewStatLogMetrics(app.registry),
		app.tracer,
		app.registry,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize statlog module: %w", err)
	}

	matchRouter, err := app.newRouter()
	if err != nil {
		return err
	}
	app.MatchModule, err = match.NewModule(
		ctx,
		db.MatchDB,
		app.AuthModule.Service,
		db.GetDB(),
		cfg.Postgres.DSN,
		app.eventBus,
		matchRouter,
		app.logger,
		metrics.NewMatchMetrics(app.registry),
		app.tracer,
		app.registry,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize match module: %w", err)
	}

	app.LiveStatsModule = livestats.NewModule(
		app.StatsService,
		app.eventBus,
		app.logger,
		metrics.NewLiveStatsMetrics(app.registry),
	)

	app.APIServer = api.NewServer(cfg.HTTP.Addr, api.Deps{
		StatLog: app.StatLogModule.Service,
		Stats:   app.StatsService,
		Matches: app.MatchModule.Service,
		Teams:   app.TeamModule.Service,
		Auth:    app.AuthModule,
		Gate:    app.MaintenanceModule.Gate,
	}, app.logger)

	return nil
}

func (app *App) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(app.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}
	app.routers = append(app.routers, router)
	return router, nil
}

// Run starts every module and blocks until ctx is canceled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	app.cancelFunc = cancel

	var wg sync.WaitGroup

	app.StatLogModule.Run(ctx, &wg)
	app.MatchModule.Run(ctx, &wg)
	app.LiveStatsModule.Run(ctx, &wg)

	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		app.metricsServer = &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.logger.Info("Metrics server listening", slog.String("addr", addr))
			if err := app.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				app.logger.Error("Metrics server stopped", slog.Any("error", err))
			}
		}()
	}

	err := app.APIServer.Run(ctx)

	cancel()
	wg.Wait()
	return err
}

// Close releases module resources in reverse start order.
func (app *App) Close() {
	if app.cancelFunc != nil {
		app.cancelFunc()
	}
	if app.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		app.metricsServer.Shutdown(shutdownCtx)
		cancel()
	}

	app.LiveStatsModule.Close()
	app.MatchModule.Close()
	app.StatLogModule.Close()

	if app.eventBus != nil {
		if err := app.eventBus.Close(); err != nil {
			app.logger.Error("Failed to close event bus", slog.Any("error", err))
		}
	}
	if app.db != nil {
		if err := app.db.GetDB().Close(); err != nil {
			app.logger.Error("Failed to close database", slog.Any("error", err))
		}
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Observability.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
