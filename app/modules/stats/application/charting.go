package statsservice

import (
	"bytes"
	"context"
	"fmt"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderPlayerChart produces a PNG bar chart of a player's counters for a
// match (and optionally one set).
func (s *StatsService) RenderPlayerChart(ctx context.Context, matchID sharedtypes.MatchID, playerID sharedtypes.PlayerID, set sharedtypes.SetNumber) ([]byte, error) {
	stats, err := s.GetPlayerStats(ctx, matchID, playerID, set)
	if err != nil {
		return nil, err
	}
	return renderStatsChart(stats, playerID)
}

func renderStatsChart(stats sharedtypes.PlayerStats, playerID sharedtypes.PlayerID) ([]byte, error) {
	bars := make([]chart.Value, 0, len(sharedtypes.StatKinds))
	for _, kind := range sharedtypes.StatKinds {
		bars = append(bars, chart.Value{
			Label: string(kind),
			Value: float64(stats.Counts[kind]),
		})
	}

	title := fmt.Sprintf("%s, all sets", playerID)
	if stats.Set > 0 {
		title = fmt.Sprintf("%s, set %d", playerID, stats.Set)
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render stats chart: %w", err)
	}
	return buf.Bytes(), nil
}
