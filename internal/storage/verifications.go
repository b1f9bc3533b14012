package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitmyself/internal/models"
	"github.com/jackc/pgx/v5"
)

// SaveVerification appends a verification payload to the log.
func (db *DB) SaveVerification(ctx context.Context, row models.VerificationRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO task_verifications
		   (id, user_id, task_type, task_name, image_url,
		    location_lat, location_lng, location_address,
		    ai_verified, ai_confidence, ai_feedback, verified_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		row.ID, row.UserID, row.TaskKind, row.TaskName, row.ImageURL,
		row.Latitude, row.Longitude, row.Address,
		row.Verified, row.Confidence, row.Feedback, row.VerifiedAt)
	if err != nil {
		return fmt.Errorf("inserting verification: %w", err)
	}
	return nil
}

// QueryVerifications returns the user's most recent verifications, newest
// first, capped at limit.
func (db *DB) QueryVerifications(ctx context.Context, userID, limit int) ([]models.VerificationRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, task_type, task_name, image_url,
		        location_lat, location_lng, location_address,
		        ai_verified, ai_confidence, ai_feedback, verified_at
		 FROM task_verifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying verifications: %w", err)
	}
	defer rows.Close()
	return scanVerificationRows(rows)
}

// QueryVerificationsByDate returns the user's verifications whose verified_at
// falls on the given calendar date, newest first.
func (db *DB) QueryVerificationsByDate(ctx context.Context, userID int, date string) ([]models.VerificationRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, task_type, task_name, image_url,
		        location_lat, location_lng, location_address,
		        ai_verified, ai_confidence, ai_feedback, verified_at
		 FROM task_verifications
		 WHERE user_id = $1 AND verified_at >= $2::date AND verified_at < $2::date + INTERVAL '1 day'
		 ORDER BY verified_at DESC`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("querying verifications by date: %w", err)
	}
	defer rows.Close()
	return scanVerificationRows(rows)
}

func scanVerificationRows(rows pgx.Rows) ([]models.VerificationRow, error) {
	var out []models.VerificationRow
	for rows.Next() {
		var r models.VerificationRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.TaskKind, &r.TaskName, &r.ImageURL,
			&r.Latitude, &r.Longitude, &r.Address,
			&r.Verified, &r.Confidence, &r.Feedback, &r.VerifiedAt); err != nil {
			return nil, fmt.Errorf("scanning verification: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
