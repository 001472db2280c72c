package statsservice

import (
	"context"
	"fmt"
	"log/slog"

	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StatsService implements Service by recomputing snapshots from the stat
// log on every read.
type StatsService struct {
	log    statlogdb.Repository
	policy AggregatePolicy
	logger *slog.Logger
	tracer trace.Tracer
}

var _ Service = (*StatsService)(nil)

// NewStatsService creates a new StatsService.
func NewStatsService(log statlogdb.Repository, policy AggregatePolicy, logger *slog.Logger, tracer trace.Tracer) *StatsService {
	return &StatsService{
		log:    log,
		policy: policy,
		logger: logger,
		tracer: tracer,
	}
}

func (s *StatsService) GetPlayerStats(ctx context.Context, matchID sharedtypes.MatchID, playerID sharedtypes.PlayerID, set sharedtypes.SetNumber) (sharedtypes.PlayerStats, error) {
	ctx, span := s.tracer.Start(ctx, "GetPlayerStats", trace.WithAttributes(
		attribute.Int64("match_id", int64(matchID)),
		attribute.String("player_id", string(playerID)),
		attribute.Int("set", int(set)),
	))
	defer span.End()

	events, err := s.log.ReadEvents(ctx, matchID, statlogdb.EventFilter{
		PlayerID: playerID,
		Set:      set,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read stat log for aggregation",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", matchID),
			attr.PlayerID("player_id", playerID),
			attr.Error(err),
		)
		return sharedtypes.PlayerStats{}, fmt.Errorf("failed to read stat log for match %d: %w", matchID, err)
	}

	stats := Aggregate(events, playerID, set, s.policy)
	stats.MatchID = matchID
	return stats, nil
}
