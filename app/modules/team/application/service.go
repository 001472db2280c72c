package teamservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	teamdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// TeamService implements Service.
type TeamService struct {
	repo   teamdb.Repository
	logger *slog.Logger
	tracer trace.Tracer
}

var _ Service = (*TeamService)(nil)

// NewTeamService creates a new TeamService.
func NewTeamService(repo teamdb.Repository, logger *slog.Logger, tracer trace.Tracer) *TeamService {
	return &TeamService{
		repo:   repo,
		logger: logger,
		tracer: tracer,
	}
}

// CreateTeam registers a new team.
func (s *TeamService) CreateTeam(ctx context.Context, name string, players []sharedtypes.PlayerID, color *string) (*sharedtypes.Team, error) {
	ctx, span := s.tracer.Start(ctx, "TeamService.CreateTeam")
	defer span.End()

	if name == "" {
		return nil, errors.New("team name is required")
	}

	team, err := s.repo.CreateTeam(ctx, &sharedtypes.Team{
		TeamName:  name,
		Players:   players,
		TeamColor: color,
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Team created",
		attr.String("team_name", name),
		attr.Int("players", len(players)),
	)
	return team, nil
}

// GetTeam fetches a team by ID.
func (s *TeamService) GetTeam(ctx context.Context, id sharedtypes.TeamID) (*sharedtypes.Team, error) {
	return s.repo.GetTeam(ctx, id)
}

// ListTeams returns all registered teams.
func (s *TeamService) ListTeams(ctx context.Context) ([]sharedtypes.Team, error) {
	return s.repo.ListTeams(ctx)
}

// ImportRoster parses an XLSX roster sheet and creates or updates the
// teams it lists.
func (s *TeamService) ImportRoster(ctx context.Context, data []byte) (*RosterImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "TeamService.ImportRoster")
	defer span.End()

	rosters, err := parseRosterXLSX(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	result := &RosterImportResult{}
	for _, roster := range rosters {
		result.Players += len(roster.Players)

		existing, err := s.repo.GetTeamByName(ctx, roster.TeamName)
		if err != nil {
			if !errors.Is(err, teamdb.ErrTeamNotFound) {
				return nil, err
			}
			if _, err := s.repo.CreateTeam(ctx, &sharedtypes.Team{
				TeamName:  roster.TeamName,
				Players:   roster.Players,
				TeamColor: roster.TeamColor,
			}); err != nil {
				return nil, err
			}
			result.TeamsCreated++
			continue
		}

		if err := s.repo.UpdateRoster(ctx, existing.ID, roster.Players); err != nil {
			return nil, err
		}
		result.TeamsUpdated++
	}

	s.logger.InfoContext(ctx, "Roster import completed",
		attr.Int("teams_created", result.TeamsCreated),
		attr.Int("teams_updated", result.TeamsUpdated),
		attr.Int("players", result.Players),
	)
	return result, nil
}
