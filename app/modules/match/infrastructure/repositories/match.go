package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/uptrace/bun"
)

// MatchDBImpl implements Repository over bun.
type MatchDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*MatchDBImpl)(nil)

func (db *MatchDBImpl) CreateMatch(ctx context.Context, match *sharedtypes.Match) error {
	row := Match{
		CourtNumber: match.CourtNumber,
		TeamA:       int64(match.TeamA),
		TeamB:       int64(match.TeamB),
		TrackerTeam: int64(match.TrackerTeam),
		StartTime:   match.StartTime,
		ScoreA:      match.ScoreA,
		ScoreB:      match.ScoreB,
		CurrentSet:  int(match.CurrentSet),
		Status:      string(match.Status),
	}
	if row.CurrentSet < 1 {
		row.CurrentSet = 1
	}
	if row.Status == "" {
		row.Status = string(sharedtypes.MatchScheduled)
	}

	if _, err := db.DB.NewInsert().
		Model(&row).
		Returning("id").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	match.ID = sharedtypes.MatchID(row.ID)
	match.CurrentSet = sharedtypes.SetNumber(row.CurrentSet)
	match.Status = sharedtypes.MatchStatus(row.Status)
	return nil
}

func (db *MatchDBImpl) GetMatch(ctx context.Context, id sharedtypes.MatchID) (*sharedtypes.Match, error) {
	var row Match
	err := db.DB.NewSelect().
		Model(&row).
		Where("id = ?", int64(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to fetch match %d: %w", id, err)
	}
	return rowToMatch(&row), nil
}

func (db *MatchDBImpl) ListMatches(ctx context.Context) ([]sharedtypes.Match, error) {
	var rows []Match
	if err := db.DB.NewSelect().
		Model(&rows).
		Order("start_time ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	matches := make([]sharedtypes.Match, 0, len(rows))
	for i := range rows {
		matches = append(matches, *rowToMatch(&rows[i]))
	}
	return matches, nil
}

func (db *MatchDBImpl) GetMatchStatus(ctx context.Context, id sharedtypes.MatchID) (sharedtypes.MatchStatus, error) {
	var status string
	err := db.DB.NewSelect().
		Model((*Match)(nil)).
		Column("status").
		Where("id = ?", int64(id)).
		Scan(ctx, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMatchNotFound
		}
		return "", fmt.Errorf("failed to fetch status for match %d: %w", id, err)
	}
	return sharedtypes.MatchStatus(status), nil
}

func (db *MatchDBImpl) SetMatchStatus(ctx context.Context, id sharedtypes.MatchID, expected, next sharedtypes.MatchStatus) error {
	res, err := db.DB.NewUpdate().
		Model((*Match)(nil)).
		Set("status = ?", string(next)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", int64(id)).
		Where("status = ?", string(expected)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set status for match %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for match %d: %w", id, err)
	}
	if affected == 0 {
		// Either the match is missing or its status moved underneath us.
		if _, getErr := db.GetMatch(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}
	return nil
}

func (db *MatchDBImpl) UpdateScore(ctx context.Context, id sharedtypes.MatchID, scoreA, scoreB int, currentSet sharedtypes.SetNumber) error {
	// The status check rides in the UPDATE itself so a finalize that lands
	// between a service-level read and this write still loses.
	res, err := db.DB.NewUpdate().
		Model((*Match)(nil)).
		Set("score_a = ?", scoreA).
		Set("score_b = ?", scoreB).
		Set("current_set = ?", int(currentSet)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", int64(id)).
		Where("status <> ?", string(sharedtypes.MatchCompleted)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update score for match %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for match %d: %w", id, err)
	}
	if affected == 0 {
		// Either the match is missing or it completed underneath us.
		if _, getErr := db.GetMatch(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}
	return nil
}

func (db *MatchDBImpl) InsertUnlockAudit(ctx context.Context, audit sharedtypes.UnlockAudit) error {
	row := UnlockAudit{
		MatchID:    int64(audit.MatchID),
		UnlockedBy: audit.UnlockedBy,
		CreatedAt:  audit.Timestamp,
	}
	if _, err := db.DB.NewInsert().
		Model(&row).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert unlock audit for match %d: %w", audit.MatchID, err)
	}
	return nil
}

func (db *MatchDBImpl) ListUnlockAudits(ctx context.Context, matchID sharedtypes.MatchID) ([]sharedtypes.UnlockAudit, error) {
	var rows []UnlockAudit
	if err := db.DB.NewSelect().
		Model(&rows).
		Where("match_id = ?", int64(matchID)).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list unlock audits for match %d: %w", matchID, err)
	}

	audits := make([]sharedtypes.UnlockAudit, 0, len(rows))
	for _, row := range rows {
		audits = append(audits, sharedtypes.UnlockAudit{
			MatchID:    sharedtypes.MatchID(row.MatchID),
			UnlockedBy: row.UnlockedBy,
			Timestamp:  row.CreatedAt,
		})
	}
	return audits, nil
}

func rowToMatch(row *Match) *sharedtypes.Match {
	return &sharedtypes.Match{
		ID:          sharedtypes.MatchID(row.ID),
		CourtNumber: row.CourtNumber,
		TeamA:       sharedtypes.TeamID(row.TeamA),
		TeamB:       sharedtypes.TeamID(row.TeamB),
		TrackerTeam: sharedtypes.TeamID(row.TrackerTeam),
		StartTime:   row.StartTime,
		ScoreA:      row.ScoreA,
		ScoreB:      row.ScoreB,
		CurrentSet:  sharedtypes.SetNumber(row.CurrentSet),
		Status:      sharedtypes.MatchStatus(row.Status),
	}
}
