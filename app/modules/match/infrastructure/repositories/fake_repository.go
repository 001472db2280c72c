package matchdb

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	CreateMatchFn       func(ctx context.Context, match *sharedtypes.Match) error
	GetMatchFn          func(ctx context.Context, id sharedtypes.MatchID) (*sharedtypes.Match, error)
	ListMatchesFn       func(ctx context.Context) ([]sharedtypes.Match, error)
	GetMatchStatusFn    func(ctx context.Context, id sharedtypes.MatchID) (sharedtypes.MatchStatus, error)
	SetMatchStatusFn    func(ctx context.Context, id sharedtypes.MatchID, expected, next sharedtypes.MatchStatus) error
	UpdateScoreFn       func(ctx context.Context, id sharedtypes.MatchID, scoreA, scoreB int, currentSet sharedtypes.SetNumber) error
	InsertUnlockAuditFn func(ctx context.Context, audit sharedtypes.UnlockAudit) error
	ListUnlockAuditsFn  func(ctx context.Context, matchID sharedtypes.MatchID) ([]sharedtypes.UnlockAudit, error)
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) CreateMatch(ctx context.Context, match *sharedtypes.Match) error {
	if f.CreateMatchFn != nil {
		return f.CreateMatchFn(ctx, match)
	}
	return nil
}

func (f *FakeRepository) GetMatch(ctx context.Context, id sharedtypes.MatchID) (*sharedtypes.Match, error) {
	if f.GetMatchFn != nil {
		return f.GetMatchFn(ctx, id)
	}
	return &sharedtypes.Match{ID: id, Status: sharedtypes.MatchScheduled}, nil
}

func (f *FakeRepository) ListMatches(ctx context.Context) ([]sharedtypes.Match, error) {
	if f.ListMatchesFn != nil {
		return f.ListMatchesFn(ctx)
	}
	return nil, nil
}

func (f *FakeRepository) GetMatchStatus(ctx context.Context, id sharedtypes.MatchID) (sharedtypes.MatchStatus, error) {
	if f.GetMatchStatusFn != nil {
		return f.GetMatchStatusFn(ctx, id)
	}
	return sharedtypes.MatchActive, nil
}

func (f *FakeRepository) SetMatchStatus(ctx context.Context, id sharedtypes.MatchID, expected, next sharedtypes.MatchStatus) error {
	if f.SetMatchStatusFn != nil {
		return f.SetMatchStatusFn(ctx, id, expected, next)
	}
	return nil
}

func (f *FakeRepository) UpdateScore(ctx context.Context, id sharedtypes.MatchID, scoreA, scoreB int, currentSet sharedtypes.SetNumber) error {
	if f.UpdateScoreFn != nil {
		return f.UpdateScoreFn(ctx, id, scoreA, scoreB, currentSet)
	}
	return nil
}

func (f *FakeRepository) InsertUnlockAudit(ctx context.Context, audit sharedtypes.UnlockAudit) error {
	if f.InsertUnlockAuditFn != nil {
		return f.InsertUnlockAuditFn(ctx, audit)
	}
	return nil
}

func (f *FakeRepository) ListUnlockAudits(ctx context.Context, matchID sharedtypes.MatchID) ([]sharedtypes.UnlockAudit, error) {
	if f.ListUnlockAuditsFn != nil {
		return f.ListUnlockAuditsFn(ctx, matchID)
	}
	return nil, nil
}
