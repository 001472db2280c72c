package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	matchservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/application"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// Service schedules match activation jobs with River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	helpers utils.Helpers
}

var _ matchservice.ActivationScheduler = (*Service)(nil)

// NewService creates the River-backed activation queue. River requires a
// pgx pool of its own, separate from the bun connection.
func NewService(ctx context.Context, bunDB *bun.DB, dsn string, logger *slog.Logger, bus eventbus.EventBus) (*Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN for River: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database for River: %w", err)
	}

	helpers := utils.NewHelpers()

	workers := river.NewWorkers()
	river.AddWorker(workers, NewMatchStartWorker(logger, bus, helpers))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			"match":            {MaxWorkers: 5},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  logger,
		db:      bunDB,
		helpers: helpers,
	}, nil
}

// Start starts the queue workers.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Match activation queue started")
	return nil
}

// Stop stops the queue workers and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	err := s.client.Stop(ctx)
	s.pool.Close()
	if err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	return nil
}

// ScheduleMatchStart queues the scheduled → active flip at startTime.
// Duplicate scheduling for the same match collapses into one job.
func (s *Service) ScheduleMatchStart(ctx context.Context, matchID sharedtypes.MatchID, startTime time.Time) error {
	if startTime.Before(time.Now()) {
		// A match created after its nominal start goes live immediately.
		startTime = time.Now()
	}

	result, err := s.client.Insert(ctx, MatchStartJob{MatchID: matchID}, &river.InsertOpts{
		Queue:       "match",
		ScheduledAt: startTime,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule match start job: %w", err)
	}

	s.logger.InfoContext(ctx, "Match start job scheduled",
		attr.MatchID("match_id", matchID),
		attr.Time("start_time", startTime),
		attr.Int64("job_id", result.Job.ID),
	)
	return nil
}

// CancelMatchJobs cancels pending scheduled jobs for a match, used when a
// match is finalized ahead of a queued activation.
func (s *Service) CancelMatchJobs(ctx context.Context, matchID sharedtypes.MatchID) error {
	type riverJobRow struct {
		ID int64 `bun:"id"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id").
		Where("kind = ?", MatchStartJob{}.Kind()).
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'match_id' = ?", fmt.Sprintf("%d", matchID)).
		Scan(ctx, &jobs)
	if err != nil {
		return fmt.Errorf("failed to query match jobs for cancellation: %w", err)
	}

	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			s.logger.WarnContext(ctx, "Failed to cancel match job",
				attr.MatchID("match_id", matchID),
				attr.Int64("job_id", job.ID),
				attr.Error(err),
			)
		}
	}
	return nil
}
