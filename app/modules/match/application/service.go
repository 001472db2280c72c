package matchservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	matchevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/events"
	matchdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/repositories"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Metrics records match lifecycle operations.
type Metrics interface {
	RecordTransition(ctx context.Context, from, to sharedtypes.MatchStatus)
	RecordUnlockAttempt(ctx context.Context, success bool)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
}

// MatchService implements Service.
type MatchService struct {
	repo      matchdb.Repository
	verifier  CredentialVerifier
	scheduler ActivationScheduler
	eventBus  eventbus.EventBus
	helpers   utils.Helpers
	logger    *slog.Logger
	metrics   Metrics
	tracer    trace.Tracer
	clock     func() time.Time
}

var _ Service = (*MatchService)(nil)

// NewMatchService creates a new MatchService.
func NewMatchService(
	repo matchdb.Repository,
	verifier CredentialVerifier,
	scheduler ActivationScheduler,
	eventBus eventbus.EventBus,
	helpers utils.Helpers,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
) *MatchService {
	return &MatchService{
		repo:      repo,
		verifier:  verifier,
		scheduler: scheduler,
		eventBus:  eventBus,
		helpers:   helpers,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		clock:     time.Now,
	}
}

func (s *MatchService) startSpan(ctx context.Context, operation string, matchID sharedtypes.MatchID) (context.Context, func()) {
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

func (s *MatchService) CreateMatch(ctx context.Context, match *sharedtypes.Match) error {
	ctx, done := s.startSpan(ctx, "CreateMatch", match.ID)
	defer done()

	if match.ScoreA < 0 || match.ScoreB < 0 || match.CurrentSet < 0 {
		return ErrInvalidScore
	}
	if match.Status == "" {
		match.Status = sharedtypes.MatchScheduled
	}

	if err := s.repo.CreateMatch(ctx, match); err != nil {
		return err
	}

	if s.scheduler != nil && match.Status == sharedtypes.MatchScheduled && !match.StartTime.IsZero() {
		if err := s.scheduler.ScheduleMatchStart(ctx, match.ID, match.StartTime); err != nil {
			// The match exists; activation can still happen manually.
			s.logger.WarnContext(ctx, "Failed to schedule match activation",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", match.ID),
				attr.Error(err),
			)
		}
	}

	s.logger.InfoContext(ctx, "Match created",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID("match_id", match.ID),
		attr.Int("court_number", match.CourtNumber),
	)
	return nil
}

func (s *MatchService) GetMatch(ctx context.Context, id sharedtypes.MatchID) (*sharedtypes.Match, error) {
	return s.repo.GetMatch(ctx, id)
}

func (s *MatchService) ListMatches(ctx context.Context) ([]sharedtypes.Match, error) {
	return s.repo.ListMatches(ctx)
}

func (s *MatchService) StartMatch(ctx context.Context, id sharedtypes.MatchID) error {
	ctx, done := s.startSpan(ctx, "StartMatch", id)
	defer done()

	if err := s.transition(ctx, id, sharedtypes.MatchScheduled, sharedtypes.MatchActive); err != nil {
		return err
	}

	s.publish(ctx, matchevents.MatchStarted, matchevents.MatchStartedPayload{
		MatchID:   id,
		StartTime: s.clock().UTC(),
	})
	return nil
}

func (s *MatchService) FinalizeMatch(ctx context.Context, id sharedtypes.MatchID) error {
	ctx, done := s.startSpan(ctx, "FinalizeMatch", id)
	defer done()

	if err := s.transition(ctx, id, sharedtypes.MatchActive, sharedtypes.MatchCompleted); err != nil {
		return err
	}

	if s.scheduler != nil {
		if err := s.scheduler.CancelMatchJobs(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "Failed to cancel scheduled match jobs",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", id),
				attr.Error(err),
			)
		}
	}

	match, err := s.repo.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	s.publish(ctx, matchevents.MatchFinalized, matchevents.MatchFinalizedPayload{
		MatchID: id,
		ScoreA:  match.ScoreA,
		ScoreB:  match.ScoreB,
	})
	return nil
}

func (s *MatchService) UpdateScore(ctx context.Context, id sharedtypes.MatchID, scoreA, scoreB int, currentSet sharedtypes.SetNumber) error {
	ctx, done := s.startSpan(ctx, "UpdateScore", id)
	defer done()

	if scoreA < 0 || scoreB < 0 || currentSet < 1 {
		return ErrInvalidScore
	}

	status, err := s.repo.GetMatchStatus(ctx, id)
	if err != nil {
		return err
	}
	if status == sharedtypes.MatchCompleted {
		return ErrMatchLocked
	}

	if err := s.repo.UpdateScore(ctx, id, scoreA, scoreB, currentSet); err != nil {
		// The repository refuses to touch a completed match, so a
		// concurrent finalize surfaces here rather than as a lost guard.
		if errors.Is(err, matchdb.ErrStatusConflict) {
			return ErrMatchLocked
		}
		return err
	}
	return nil
}

func (s *MatchService) ListUnlockAudits(ctx context.Context, id sharedtypes.MatchID) ([]sharedtypes.UnlockAudit, error) {
	return s.repo.ListUnlockAudits(ctx, id)
}

// transition applies one state machine edge with a guarded repository
// update.
func (s *MatchService) transition(ctx context.Context, id sharedtypes.MatchID, from, to sharedtypes.MatchStatus) error {
	status, err := s.repo.GetMatchStatus(ctx, id)
	if err != nil {
		return err
	}
	if status != from || !CanTransition(from, to) {
		s.logger.InfoContext(ctx, "Rejected match status transition",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", id),
			attr.String("from", string(status)),
			attr.String("to", string(to)),
		)
		return ErrInvalidTransition
	}

	if err := s.repo.SetMatchStatus(ctx, id, from, to); err != nil {
		if errors.Is(err, matchdb.ErrStatusConflict) {
			return ErrInvalidTransition
		}
		return err
	}

	s.metrics.RecordTransition(ctx, from, to)
	return nil
}

func (s *MatchService) publish(ctx context.Context, topic string, payload any) {
	msg, err := s.helpers.CreateNewMessage(payload, topic)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build match event", attr.Error(err))
		return
	}
	if err := s.eventBus.Publish(ctx, topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish match event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
