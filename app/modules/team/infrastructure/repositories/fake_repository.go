package teamdb

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// FakeRepository allows overriding each repository method in tests.
type FakeRepository struct {
	CreateTeamFn    func(ctx context.Context, team *sharedtypes.Team) (*sharedtypes.Team, error)
	GetTeamFn       func(ctx context.Context, id sharedtypes.TeamID) (*sharedtypes.Team, error)
	GetTeamByNameFn func(ctx context.Context, name string) (*sharedtypes.Team, error)
	ListTeamsFn     func(ctx context.Context) ([]sharedtypes.Team, error)
	UpdateRosterFn  func(ctx context.Context, id sharedtypes.TeamID, players []sharedtypes.PlayerID) error
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) CreateTeam(ctx context.Context, team *sharedtypes.Team) (*sharedtypes.Team, error) {
	if f.CreateTeamFn != nil {
		return f.CreateTeamFn(ctx, team)
	}
	out := *team
	out.ID = 1
	return &out, nil
}

func (f *FakeRepository) GetTeam(ctx context.Context, id sharedtypes.TeamID) (*sharedtypes.Team, error) {
	if f.GetTeamFn != nil {
		return f.GetTeamFn(ctx, id)
	}
	return nil, ErrTeamNotFound
}

func (f *FakeRepository) GetTeamByName(ctx context.Context, name string) (*sharedtypes.Team, error) {
	if f.GetTeamByNameFn != nil {
		return f.GetTeamByNameFn(ctx, name)
	}
	return nil, ErrTeamNotFound
}

func (f *FakeRepository) ListTeams(ctx context.Context) ([]sharedtypes.Team, error) {
	if f.ListTeamsFn != nil {
		return f.ListTeamsFn(ctx)
	}
	return nil, nil
}

func (f *FakeRepository) UpdateRoster(ctx context.Context, id sharedtypes.TeamID, players []sharedtypes.PlayerID) error {
	if f.UpdateRosterFn != nil {
		return f.UpdateRosterFn(ctx, id, players)
	}
	return nil
}
