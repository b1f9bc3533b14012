package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/fitmyself/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetStats returns the user's stats record, or (nil, nil) when none exists.
func (db *DB) GetStats(ctx context.Context, userID int) (*models.UserStats, error) {
	var s models.UserStats
	err := db.Pool.QueryRow(ctx,
		`SELECT total_fitcoins, streak, level, completed_tasks
		 FROM user_stats WHERE user_id = $1`, userID,
	).Scan(&s.TotalFitcoins, &s.Streak, &s.Level, &s.CompletedTasks)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	return &s, nil
}

// CreateStats inserts the onboarding baseline stats row.
func (db *DB) CreateStats(ctx context.Context, userID int, s models.UserStats) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO user_stats (user_id, total_fitcoins, streak, level, completed_tasks)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, s.TotalFitcoins, s.Streak, s.Level, s.CompletedTasks)
	if err != nil {
		return fmt.Errorf("inserting stats: %w", err)
	}
	return nil
}

// CommitDay writes the updated stats and the day's progress row in a single
// transaction. Either both land or neither does, so a concurrent reader can
// never see coins granted without the matching completion flag.
func (db *DB) CommitDay(ctx context.Context, userID int, s models.UserStats, p models.DailyProgress, activityDate string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning commit: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE user_stats
		 SET total_fitcoins = $2, streak = $3, level = $4, completed_tasks = $5,
		     last_activity_date = $6, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, s.TotalFitcoins, s.Streak, s.Level, s.CompletedTasks, activityDate)
	if err != nil {
		return fmt.Errorf("updating stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no stats row for user %d", userID)
	}

	if err := upsertProgress(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
