package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/fitmyself/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// execer is satisfied by both *pgxpool.Pool and pgx.Tx, so the progress
// upsert can run standalone or inside CommitDay's transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// GetProgress returns the progress row for (user, date), or (nil, nil) when
// the user has not acted on that date yet.
func (db *DB) GetProgress(ctx context.Context, userID int, date string) (*models.DailyProgress, error) {
	p := models.DailyProgress{UserID: userID, Date: date}
	err := db.Pool.QueryRow(ctx,
		`SELECT workout_completed, diet_completed, water_completed, sleep_completed,
		        water_target, water_current, sleep_target, sleep_actual,
		        fitcoins_earned, streak_awarded
		 FROM daily_progress WHERE user_id = $1 AND date = $2`,
		userID, date,
	).Scan(&p.WorkoutCompleted, &p.DietCompleted, &p.WaterCompleted, &p.SleepCompleted,
		&p.WaterTarget, &p.WaterCurrent, &p.SleepTarget, &p.SleepActual,
		&p.FitcoinsEarned, &p.StreakAwarded)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying daily progress: %w", err)
	}
	return &p, nil
}

// CreateProgress inserts the day's initial row. ON CONFLICT DO NOTHING keeps
// a racing second session from failing the initialization path.
func (db *DB) CreateProgress(ctx context.Context, p models.DailyProgress) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO daily_progress
		   (user_id, date, water_target, water_current, sleep_target, sleep_actual)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, date) DO NOTHING`,
		p.UserID, p.Date, p.WaterTarget, p.WaterCurrent, p.SleepTarget, p.SleepActual)
	if err != nil {
		return fmt.Errorf("inserting daily progress: %w", err)
	}
	return nil
}

// UpsertProgress writes the full per-day state, last writer wins on the
// (user_id, date) key.
func (db *DB) UpsertProgress(ctx context.Context, p models.DailyProgress) error {
	return upsertProgress(ctx, db.Pool, p)
}

func upsertProgress(ctx context.Context, ex execer, p models.DailyProgress) error {
	_, err := ex.Exec(ctx,
		`INSERT INTO daily_progress
		   (user_id, date, workout_completed, diet_completed, water_completed, sleep_completed,
		    water_target, water_current, sleep_target, sleep_actual, fitcoins_earned, streak_awarded)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		   workout_completed = EXCLUDED.workout_completed,
		   diet_completed    = EXCLUDED.diet_completed,
		   water_completed   = EXCLUDED.water_completed,
		   sleep_completed   = EXCLUDED.sleep_completed,
		   water_target      = EXCLUDED.water_target,
		   water_current     = EXCLUDED.water_current,
		   sleep_target      = EXCLUDED.sleep_target,
		   sleep_actual      = EXCLUDED.sleep_actual,
		   fitcoins_earned   = EXCLUDED.fitcoins_earned,
		   streak_awarded    = EXCLUDED.streak_awarded,
		   updated_at        = NOW()`,
		p.UserID, p.Date, p.WorkoutCompleted, p.DietCompleted, p.WaterCompleted, p.SleepCompleted,
		p.WaterTarget, p.WaterCurrent, p.SleepTarget, p.SleepActual, p.FitcoinsEarned, p.StreakAwarded)
	if err != nil {
		return fmt.Errorf("upserting daily progress: %w", err)
	}
	return nil
}
