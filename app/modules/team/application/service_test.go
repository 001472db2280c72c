package teamservice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	teamdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestService(repo teamdb.Repository) *TeamService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewTeamService(repo, logger, tracer)
}

// rosterSheet builds an in-memory XLSX roster with the given rows under
// the given header.
func rosterSheet(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to build cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("failed to set cell %s: %v", name, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseRosterXLSX(t *testing.T) {
	data := rosterSheet(t,
		[]string{"Team", "Player", "Color"},
		[][]string{
			{"Bayview A", "p1", "blue"},
			{"Bayview A", "p2", ""},
			{"Bayview B", "p3", "red"},
			{"", "", ""},
		},
	)

	rosters, err := parseRosterXLSX(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rosters) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(rosters))
	}
	if rosters[0].TeamName != "Bayview A" || len(rosters[0].Players) != 2 {
		t.Errorf("unexpected first roster: %+v", rosters[0])
	}
	if rosters[0].TeamColor == nil || *rosters[0].TeamColor != "blue" {
		t.Errorf("expected blue for Bayview A, got %v", rosters[0].TeamColor)
	}
	if rosters[1].TeamName != "Bayview B" || len(rosters[1].Players) != 1 {
		t.Errorf("unexpected second roster: %+v", rosters[1])
	}
}

func TestParseRosterXLSX_HeaderAliases(t *testing.T) {
	data := rosterSheet(t,
		[]string{"team name", "player id"},
		[][]string{{"Bayview A", "p1"}},
	)

	rosters, err := parseRosterXLSX(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rosters) != 1 || rosters[0].TeamColor != nil {
		t.Errorf("unexpected rosters: %+v", rosters)
	}
}

func TestParseRosterXLSX_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "not an xlsx", data: []byte("definitely not a workbook")},
		{
			name: "missing player column",
			data: rosterSheet(t, []string{"Team", "Jersey"}, [][]string{{"Bayview A", "7"}}),
		},
		{
			name: "row with team but no player",
			data: rosterSheet(t, []string{"Team", "Player"}, [][]string{{"Bayview A", ""}}),
		},
		{
			name: "header only",
			data: rosterSheet(t, []string{"Team", "Player"}, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRosterXLSX(tt.data); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestTeamService_ImportRoster(t *testing.T) {
	data := rosterSheet(t,
		[]string{"Team", "Player"},
		[][]string{
			{"Bayview A", "p1"},
			{"Bayview A", "p2"},
			{"Bayview B", "p3"},
		},
	)

	var created []string
	var updated []sharedtypes.TeamID
	repo := &teamdb.FakeRepository{
		GetTeamByNameFn: func(ctx context.Context, name string) (*sharedtypes.Team, error) {
			if name == "Bayview B" {
				return &sharedtypes.Team{ID: 2, TeamName: "Bayview B"}, nil
			}
			return nil, teamdb.ErrTeamNotFound
		},
		CreateTeamFn: func(ctx context.Context, team *sharedtypes.Team) (*sharedtypes.Team, error) {
			created = append(created, team.TeamName)
			out := *team
			out.ID = 1
			return &out, nil
		},
		UpdateRosterFn: func(ctx context.Context, id sharedtypes.TeamID, players []sharedtypes.PlayerID) error {
			updated = append(updated, id)
			return nil
		},
	}
	service := newTestService(repo)

	result, err := service.ImportRoster(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TeamsCreated != 1 || result.TeamsUpdated != 1 || result.Players != 3 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(created) != 1 || created[0] != "Bayview A" {
		t.Errorf("expected Bayview A created, got %v", created)
	}
	if len(updated) != 1 || updated[0] != 2 {
		t.Errorf("expected Bayview B (id 2) updated, got %v", updated)
	}
}

func TestTeamService_ImportRoster_StorageFailureAborts(t *testing.T) {
	data := rosterSheet(t,
		[]string{"Team", "Player"},
		[][]string{{"Bayview A", "p1"}},
	)

	service := newTestService(&teamdb.FakeRepository{
		GetTeamByNameFn: func(ctx context.Context, name string) (*sharedtypes.Team, error) {
			return nil, errors.New("connection refused")
		},
	})

	if _, err := service.ImportRoster(context.Background(), data); err == nil {
		t.Fatal("expected the storage failure to propagate")
	}
}

func TestTeamService_CreateTeam_RequiresName(t *testing.T) {
	service := newTestService(&teamdb.FakeRepository{
		CreateTeamFn: func(ctx context.Context, team *sharedtypes.Team) (*sharedtypes.Team, error) {
			t.Error("repository must not be called for invalid input")
			return nil, nil
		},
	})

	if _, err := service.CreateTeam(context.Background(), "", nil, nil); err == nil {
		t.Fatal("expected an error for an empty team name")
	}
}
