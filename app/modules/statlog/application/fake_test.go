package statlogservice

import (
	"context"
	"time"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// FakeMatchGuard is a fake MatchGuard for testing.
type FakeMatchGuard struct {
	GetMatchStatusFn func(ctx context.Context, matchID sharedtypes.MatchID) (sharedtypes.MatchStatus, error)
}

func (f *FakeMatchGuard) GetMatchStatus(ctx context.Context, matchID sharedtypes.MatchID) (sharedtypes.MatchStatus, error) {
	if f.GetMatchStatusFn != nil {
		return f.GetMatchStatusFn(ctx, matchID)
	}
	return sharedtypes.MatchActive, nil
}

// FakeMetrics records metric calls without a registry.
type FakeMetrics struct {
	Attempts  int
	Successes int
	Failures  []string
}

func (f *FakeMetrics) RecordAppendAttempt(ctx context.Context, matchID sharedtypes.MatchID) {
	f.Attempts++
}

func (f *FakeMetrics) RecordAppendSuccess(ctx context.Context, matchID sharedtypes.MatchID, kind sharedtypes.StatKind) {
	f.Successes++
}

func (f *FakeMetrics) RecordAppendFailure(ctx context.Context, matchID sharedtypes.MatchID, reason string) {
	f.Failures = append(f.Failures, reason)
}

func (f *FakeMetrics) RecordOperationDuration(ctx context.Context, operation string, duration time.Duration) {
}
