package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/fitmyself/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetOrCreateUser finds or creates a user by login name (the Tailscale
// identity, or "local" in dev mode). Returns the user ID. Updates last_seen
// and display_name on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	return id, err
}

// GetProfile returns the user's profile, or (nil, nil) when onboarding has
// not happened yet.
func (db *DB) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	var p models.UserProfile
	err := db.Pool.QueryRow(ctx,
		`SELECT name, age, height_cm, weight_kg, goal, gender
		 FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&p.Name, &p.Age, &p.HeightCM, &p.WeightKG, &p.Goal, &p.Gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts the onboarding profile.
func (db *DB) CreateProfile(ctx context.Context, userID int, p models.UserProfile) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, name, age, height_cm, weight_kg, goal, gender)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, p.Name, p.Age, p.HeightCM, p.WeightKG, p.Goal, p.Gender)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// UpdateProfile overwrites the stored profile after an explicit edit.
func (db *DB) UpdateProfile(ctx context.Context, userID int, p models.UserProfile) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE user_profiles
		 SET name = $2, age = $3, height_cm = $4, weight_kg = $5, goal = $6, gender = $7, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, p.Name, p.Age, p.HeightCM, p.WeightKG, p.Goal, p.Gender)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no profile for user %d", userID)
	}
	return nil
}
