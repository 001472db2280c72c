package statlogservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Metrics records stat log operation outcomes.
type Metrics interface {
	RecordAppendAttempt(ctx context.Context, matchID sharedtypes.MatchID)
	RecordAppendSuccess(ctx context.Context, matchID sharedtypes.MatchID, kind sharedtypes.StatKind)
	RecordAppendFailure(ctx context.Context, matchID sharedtypes.MatchID, reason string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
}

// StatLogService implements Service.
type StatLogService struct {
	repo     statlogdb.Repository
	matches  MatchGuard
	eventBus eventbus.EventBus
	helpers  utils.Helpers
	logger   *slog.Logger
	metrics  Metrics
	tracer   trace.Tracer
	clock    func() time.Time
}

var _ Service = (*StatLogService)(nil)

// NewStatLogService creates a new StatLogService.
func NewStatLogService(
	repo statlogdb.Repository,
	matches MatchGuard,
	eventBus eventbus.EventBus,
	helpers utils.Helpers,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
) *StatLogService {
	return &StatLogService{
		repo:     repo,
		matches:  matches,
		eventBus: eventBus,
		helpers:  helpers,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		clock:    time.Now,
	}
}

// startSpan wraps an operation with tracing and duration metrics.
func (s *StatLogService) startSpan(ctx context.Context, operation string, matchID sharedtypes.MatchID) (context.Context, func()) {
	ctx, span := s.tracer.Start(ctx, operation, trace.WithAttributes(
		attribute.String("operation", operation),
		attribute.Int64("match_id", int64(matchID)),
	))
	start := s.clock()
	return ctx, func() {
		s.metrics.RecordOperationDuration(ctx, operation, s.clock().Sub(start))
		span.End()
	}
}

func (s *StatLogService) Append(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
	ctx, done := s.startSpan(ctx, "StatLogAppend", event.MatchID)
	defer done()

	s.metrics.RecordAppendAttempt(ctx, event.MatchID)

	if err := validateEvent(event); err != nil {
		s.metrics.RecordAppendFailure(ctx, event.MatchID, "validation")
		s.logger.WarnContext(ctx, "Rejected malformed stat event",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", event.MatchID),
			attr.Error(err),
		)
		return 0, err
	}

	status, err := s.matches.GetMatchStatus(ctx, event.MatchID)
	if err != nil {
		s.metrics.RecordAppendFailure(ctx, event.MatchID, "match_lookup")
		return 0, err
	}
	if status == sharedtypes.MatchCompleted {
		s.metrics.RecordAppendFailure(ctx, event.MatchID, "match_locked")
		s.logger.InfoContext(ctx, "Append rejected, match is locked",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", event.MatchID),
			attr.PlayerID("player_id", event.PlayerID),
		)
		return 0, ErrMatchLocked
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock().UTC()
	}

	position, err := s.repo.AppendEvent(ctx, event)
	if err != nil {
		s.metrics.RecordAppendFailure(ctx, event.MatchID, "storage")
		s.logger.ErrorContext(ctx, "Failed to append stat event",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", event.MatchID),
			attr.Error(err),
		)
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.metrics.RecordAppendSuccess(ctx, event.MatchID, event.StatName)
	s.publishRecorded(ctx, event, position)

	return position, nil
}

func (s *StatLogService) Read(ctx context.Context, matchID sharedtypes.MatchID, filter statlogdb.EventFilter) ([]sharedtypes.StatEvent, error) {
	ctx, done := s.startSpan(ctx, "StatLogRead", matchID)
	defer done()

	events, err := s.repo.ReadEvents(ctx, matchID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read stat events",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", matchID),
			attr.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return events, nil
}

func validateEvent(event sharedtypes.StatEvent) error {
	if event.MatchID == 0 {
		return &ValidationError{Field: "match_id", Message: "must be set"}
	}
	if event.PlayerID == "" {
		return &ValidationError{Field: "player_id", Message: "must be set"}
	}
	if !event.StatName.IsValid() {
		return &ValidationError{Field: "stat_name", Message: "unknown stat kind " + string(event.StatName)}
	}
	if event.Set < 1 {
		return &ValidationError{Field: "set", Message: "must be >= 1"}
	}
	// Value takes any signed integer. Zero and negative entries are how
	// trackers amend earlier mistakes without rewriting the log.
	return nil
}
