package teamservice

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// RosterImportResult summarizes an XLSX roster import.
type RosterImportResult struct {
	TeamsCreated int
	TeamsUpdated int
	Players      int
}

// Service manages teams and their rosters.
type Service interface {
	CreateTeam(ctx context.Context, name string, players []sharedtypes.PlayerID, color *string) (*sharedtypes.Team, error)
	GetTeam(ctx context.Context, id sharedtypes.TeamID) (*sharedtypes.Team, error)
	ListTeams(ctx context.Context) ([]sharedtypes.Team, error)
	ImportRoster(ctx context.Context, data []byte) (*RosterImportResult, error)
}
