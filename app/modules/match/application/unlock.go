package matchservice

import (
	"context"
	"errors"
	"fmt"

	authservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/application"
	matchevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/events"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// UnlockMatch verifies admin credentials and, only on success, moves a
// completed match back to active, recording an audit row. Failed
// verification leaves no trace beyond a log line.
func (s *MatchService) UnlockMatch(ctx context.Context, id sharedtypes.MatchID, username, password string) error {
	ctx, done := s.startSpan(ctx, "UnlockMatch", id)
	defer done()

	credential, err := s.verifier.VerifyAdminCredentials(ctx, username, password)
	if err != nil {
		s.metrics.RecordUnlockAttempt(ctx, false)
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			s.logger.WarnContext(ctx, "Unlock attempt with invalid credentials",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", id),
				attr.String("username", username),
			)
			return ErrInvalidCredentials
		}
		// The verifier failed for some other reason, most likely the
		// credential store. Callers must be able to tell that apart from a
		// bad password.
		s.logger.ErrorContext(ctx, "Failed to verify unlock credentials",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", id),
			attr.Error(err),
		)
		return fmt.Errorf("failed to verify unlock credentials: %w", err)
	}

	if err := s.transition(ctx, id, sharedtypes.MatchCompleted, sharedtypes.MatchActive); err != nil {
		s.metrics.RecordUnlockAttempt(ctx, false)
		return err
	}

	audit := sharedtypes.UnlockAudit{
		MatchID:    id,
		UnlockedBy: credential.Username,
		Timestamp:  s.clock().UTC(),
	}
	if err := s.repo.InsertUnlockAudit(ctx, audit); err != nil {
		// The unlock happened; an unrecorded audit is a surfaced error,
		// not a rollback.
		s.logger.ErrorContext(ctx, "Failed to record unlock audit",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID("match_id", id),
			attr.Error(err),
		)
		return err
	}

	s.metrics.RecordUnlockAttempt(ctx, true)
	s.logger.InfoContext(ctx, "Match unlocked",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID("match_id", id),
		attr.String("unlocked_by", credential.Username),
	)

	s.publish(ctx, matchevents.MatchUnlocked, matchevents.MatchUnlockedPayload{
		MatchID:    id,
		UnlockedBy: credential.Username,
		Timestamp:  audit.Timestamp,
	})
	return nil
}
