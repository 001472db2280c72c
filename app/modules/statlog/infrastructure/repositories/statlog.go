package statlogdb

import (
	"context"
	"fmt"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/uptrace/bun"
)

// StatLogDBImpl implements Repository over bun.
type StatLogDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*StatLogDBImpl)(nil)

func (db *StatLogDBImpl) AppendEvent(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
	row := StatEvent{
		MatchID:   int64(event.MatchID),
		PlayerID:  string(event.PlayerID),
		StatName:  string(event.StatName),
		Value:     event.Value,
		SetNumber: int(event.Set),
		CreatedAt: event.Timestamp,
	}

	if _, err := db.DB.NewInsert().
		Model(&row).
		Returning("id").
		Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to append stat event for match %d: %w", event.MatchID, err)
	}

	return sharedtypes.LogPosition(row.ID), nil
}

func (db *StatLogDBImpl) ReadEvents(ctx context.Context, matchID sharedtypes.MatchID, filter EventFilter) ([]sharedtypes.StatEvent, error) {
	var rows []StatEvent
	q := db.DB.NewSelect().
		Model(&rows).
		Where("match_id = ?", int64(matchID)).
		Order("id ASC")

	if filter.PlayerID != "" {
		q = q.Where("player_id = ?", string(filter.PlayerID))
	}
	if filter.Set > 0 {
		q = q.Where("set_number = ?", int(filter.Set))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to read stat events for match %d: %w", matchID, err)
	}

	events := make([]sharedtypes.StatEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, sharedtypes.StatEvent{
			MatchID:   sharedtypes.MatchID(row.MatchID),
			PlayerID:  sharedtypes.PlayerID(row.PlayerID),
			StatName:  sharedtypes.StatKind(row.StatName),
			Value:     row.Value,
			Set:       sharedtypes.SetNumber(row.SetNumber),
			Timestamp: row.CreatedAt,
		})
	}
	return events, nil
}

func (db *StatLogDBImpl) CountEvents(ctx context.Context, matchID sharedtypes.MatchID) (int64, error) {
	count, err := db.DB.NewSelect().
		Model((*StatEvent)(nil)).
		Where("match_id = ?", int64(matchID)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count stat events for match %d: %w", matchID, err)
	}
	return int64(count), nil
}
