package statlogdb

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	AppendEventFn func(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error)
	ReadEventsFn  func(ctx context.Context, matchID sharedtypes.MatchID, filter EventFilter) ([]sharedtypes.StatEvent, error)
	CountEventsFn func(ctx context.Context, matchID sharedtypes.MatchID) (int64, error)
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) AppendEvent(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
	if f.AppendEventFn != nil {
		return f.AppendEventFn(ctx, event)
	}
	return 1, nil
}

func (f *FakeRepository) ReadEvents(ctx context.Context, matchID sharedtypes.MatchID, filter EventFilter) ([]sharedtypes.StatEvent, error) {
	if f.ReadEventsFn != nil {
		return f.ReadEventsFn(ctx, matchID, filter)
	}
	return nil, nil
}

func (f *FakeRepository) CountEvents(ctx context.Context, matchID sharedtypes.MatchID) (int64, error) {
	if f.CountEventsFn != nil {
		return f.CountEventsFn(ctx, matchID)
	}
	return 0, nil
}
