package teamdb

import (
	"context"
	"errors"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// ErrTeamNotFound is returned when no team exists for an ID or name.
var ErrTeamNotFound = errors.New("team not found")

// ErrTeamExists is returned when creating a team whose name is taken.
var ErrTeamExists = errors.New("team already exists")

// Repository handles team persistence.
type Repository interface {
	CreateTeam(ctx context.Context, team *sharedtypes.Team) (*sharedtypes.Team, error)
	GetTeam(ctx context.Context, id sharedtypes.TeamID) (*sharedtypes.Team, error)
	GetTeamByName(ctx context.Context, name string) (*sharedtypes.Team, error)
	ListTeams(ctx context.Context) ([]sharedtypes.Team, error)
	UpdateRoster(ctx context.Context, id sharedtypes.TeamID, players []sharedtypes.PlayerID) error
}
