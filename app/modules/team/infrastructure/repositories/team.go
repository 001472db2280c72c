package teamdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// TeamDBImpl is the bun-backed team store.
type TeamDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*TeamDBImpl)(nil)

// CreateTeam inserts a new team and returns it with its assigned ID.
func (db *TeamDBImpl) CreateTeam(ctx context.Context, team *sharedtypes.Team) (*sharedtypes.Team, error) {
	row := &Team{
		TeamName:  team.TeamName,
		Players:   playersToStrings(team.Players),
		TeamColor: team.TeamColor,
	}

	_, err := db.DB.NewInsert().Model(row).Returning("id").Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return nil, ErrTeamExists
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return rowToTeam(row), nil
}

// GetTeam fetches a team by ID.
func (db *TeamDBImpl) GetTeam(ctx context.Context, id sharedtypes.TeamID) (*sharedtypes.Team, error) {
	row := new(Team)
	err := db.DB.NewSelect().Model(row).Where("id = ?", int64(id)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to fetch team: %w", err)
	}
	return rowToTeam(row), nil
}

// GetTeamByName fetches a team by its unique name.
func (db *TeamDBImpl) GetTeamByName(ctx context.Context, name string) (*sharedtypes.Team, error) {
	row := new(Team)
	err := db.DB.NewSelect().Model(row).Where("team_name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to fetch team by name: %w", err)
	}
	return rowToTeam(row), nil
}

// ListTeams returns all teams ordered by name.
func (db *TeamDBImpl) ListTeams(ctx context.Context) ([]sharedtypes.Team, error) {
	var rows []Team
	err := db.DB.NewSelect().Model(&rows).Order("team_name ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	teams := make([]sharedtypes.Team, 0, len(rows))
	for i := range rows {
		teams = append(teams, *rowToTeam(&rows[i]))
	}
	return teams, nil
}

// UpdateRoster replaces a team's player list.
func (db *TeamDBImpl) UpdateRoster(ctx context.Context, id sharedtypes.TeamID, players []sharedtypes.PlayerID) error {
	res, err := db.DB.NewUpdate().
		Model((*Team)(nil)).
		Set("players = ?", pgdialect.Array(playersToStrings(players))).
		Where("id = ?", int64(id)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update roster: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func playersToStrings(players []sharedtypes.PlayerID) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = string(p)
	}
	return out
}

func rowToTeam(row *Team) *sharedtypes.Team {
	players := make([]sharedtypes.PlayerID, len(row.Players))
	for i, p := range row.Players {
		players[i] = sharedtypes.PlayerID(p)
	}
	return &sharedtypes.Team{
		ID:        sharedtypes.TeamID(row.ID),
		TeamName:  row.TeamName,
		Players:   players,
		TeamColor: row.TeamColor,
	}
}
