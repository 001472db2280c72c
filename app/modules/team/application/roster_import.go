package teamservice

import (
	"bytes"
	"fmt"
	"strings"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/xuri/excelize/v2"
)

// teamRoster is one team's worth of parsed roster rows.
type teamRoster struct {
	TeamName  string
	Players   []sharedtypes.PlayerID
	TeamColor *string
}

// parseRosterXLSX reads the club roster sheet. Expected layout: a header
// row, then one row per player with columns team, player, and an
// optional color. Rows are grouped by team in sheet order.
func parseRosterXLSX(data []byte) ([]teamRoster, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	teamCol, playerCol, colorCol, err := findRosterColumns(rows[0])
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*teamRoster)
	var order []string

	for i, row := range rows[1:] {
		teamName := cellAt(row, teamCol)
		playerID := cellAt(row, playerCol)
		if teamName == "" && playerID == "" {
			continue
		}
		if teamName == "" || playerID == "" {
			return nil, fmt.Errorf("row %d: team and player are both required", i+2)
		}

		roster, ok := byName[teamName]
		if !ok {
			roster = &teamRoster{TeamName: teamName}
			if colorCol >= 0 {
				if color := cellAt(row, colorCol); color != "" {
					roster.TeamColor = &color
				}
			}
			byName[teamName] = roster
			order = append(order, teamName)
		}
		roster.Players = append(roster.Players, sharedtypes.PlayerID(playerID))
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("sheet %q has no roster rows", sheetName)
	}

	rosters := make([]teamRoster, 0, len(order))
	for _, name := range order {
		rosters = append(rosters, *byName[name])
	}
	return rosters, nil
}

// findRosterColumns locates the team and player columns in the header
// row. Color is optional and reported as -1 when absent.
func findRosterColumns(header []string) (teamCol, playerCol, colorCol int, err error) {
	teamCol, playerCol, colorCol = -1, -1, -1
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "team", "team name":
			teamCol = i
		case "player", "player id", "name":
			playerCol = i
		case "color", "team color":
			colorCol = i
		}
	}
	if teamCol < 0 || playerCol < 0 {
		return 0, 0, 0, fmt.Errorf("header row must contain team and player columns")
	}
	return teamCol, playerCol, colorCol, nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
