package matchservice

import (
	"context"
	"time"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// FakeCredentialVerifier is a fake CredentialVerifier for testing.
type FakeCredentialVerifier struct {
	VerifyAdminCredentialsFn func(ctx context.Context, username, password string) (*sharedtypes.AdminCredential, error)
}

func (f *FakeCredentialVerifier) VerifyAdminCredentials(ctx context.Context, username, password string) (*sharedtypes.AdminCredential, error) {
	if f.VerifyAdminCredentialsFn != nil {
		return f.VerifyAdminCredentialsFn(ctx, username, password)
	}
	return &sharedtypes.AdminCredential{Username: username}, nil
}

// FakeScheduler is a fake ActivationScheduler for testing.
type FakeScheduler struct {
	Scheduled []sharedtypes.MatchID
	Canceled  []sharedtypes.MatchID

	ScheduleMatchStartFn func(ctx context.Context, matchID sharedtypes.MatchID, startTime time.Time) error
	CancelMatchJobsFn    func(ctx context.Context, matchID sharedtypes.MatchID) error
}

func (f *FakeScheduler) ScheduleMatchStart(ctx context.Context, matchID sharedtypes.MatchID, startTime time.Time) error {
	f.Scheduled = append(f.Scheduled, matchID)
	if f.ScheduleMatchStartFn != nil {
		return f.ScheduleMatchStartFn(ctx, matchID, startTime)
	}
	return nil
}

func (f *FakeScheduler) CancelMatchJobs(ctx context.Context, matchID sharedtypes.MatchID) error {
	f.Canceled = append(f.Canceled, matchID)
	if f.CancelMatchJobsFn != nil {
		return f.CancelMatchJobsFn(ctx, matchID)
	}
	return nil
}

// FakeMetrics records metric calls without a registry.
type FakeMetrics struct {
	Transitions    []string
	UnlockAttempts []bool
}

func (f *FakeMetrics) RecordTransition(ctx context.Context, from, to sharedtypes.MatchStatus) {
	f.Transitions = append(f.Transitions, string(from)+"->"+string(to))
}

func (f *FakeMetrics) RecordUnlockAttempt(ctx context.Context, success bool) {
	f.UnlockAttempts = append(f.UnlockAttempts, success)
}

func (f *FakeMetrics) RecordOperationDuration(ctx context.Context, operation string, duration time.Duration) {
}
