package models

import (
	"time"

	"github.com/google/uuid"
)

// AIVerdict is the image verifier's assessment of a submitted photo.
// Advisory only: completion never gates on Verified.
type AIVerdict struct {
	Verified   bool   `json:"verified"`
	Confidence int    `json:"confidence"` // 0-100
	Feedback   string `json:"feedback"`
}

// Location is where a verification photo was taken.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// VerificationData is the optional payload attached to a workout or diet
// completion. It is forwarded to the verification log and never blocks the
// completion itself.
type VerificationData struct {
	ImageURL  string    `json:"image_url"`
	Location  Location  `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	AIVerdict AIVerdict `json:"ai_verification"`
}

// VerificationRow is a persisted task verification.
type VerificationRow struct {
	ID         uuid.UUID `json:"id"`
	UserID     int       `json:"user_id"`
	TaskKind   TaskKind  `json:"task_type"`
	TaskName   string    `json:"task_name"`
	ImageURL   string    `json:"image_url"`
	Latitude   float64   `json:"location_lat"`
	Longitude  float64   `json:"location_lng"`
	Address    string    `json:"location_address,omitempty"`
	Verified   bool      `json:"ai_verified"`
	Confidence int       `json:"ai_confidence"`
	Feedback   string    `json:"ai_feedback"`
	VerifiedAt time.Time `json:"verified_at"`
}
