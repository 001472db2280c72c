package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	teamdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/go-chi/chi/v5"
)

// maxRosterUpload caps roster spreadsheet uploads at 5 MiB.
const maxRosterUpload = 5 << 20

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.deps.Teams.ListTeams(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list teams: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(teams)
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "teamID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("invalid team ID %q", raw), http.StatusBadRequest)
		return
	}

	team, err := s.deps.Teams.GetTeam(r.Context(), sharedtypes.TeamID(id))
	if err != nil {
		if errors.Is(err, teamdb.ErrTeamNotFound) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch team: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// CreateTeamDto represents the input data for registering a team.
type CreateTeamDto struct {
	TeamName  string                 `json:"teamName"`
	Players   []sharedtypes.PlayerID `json:"players"`
	TeamColor *string                `json:"teamColor,omitempty"`
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var input CreateTeamDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	team, err := s.deps.Teams.CreateTeam(r.Context(), input.TeamName, input.Players, input.TeamColor)
	if err != nil {
		if errors.Is(err, teamdb.ErrTeamExists) {
			http.Error(w, "Team already exists", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to create team: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(team)
}

func (s *Server) handleImportRoster(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRosterUpload))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read upload: %v", err), http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, "Empty roster upload", http.StatusBadRequest)
		return
	}

	result, err := s.deps.Teams.ImportRoster(r.Context(), data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to import roster: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
