package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/fitmyself/internal/models"
	"github.com/claude/fitmyself/internal/plan"
	"github.com/google/uuid"
)

// ErrNoProfile is returned when a session is loaded for a user that has not
// completed onboarding. Callers treat it as "show the setup flow", not as a
// failure.
var ErrNoProfile = errors.New("user has no profile")

// ProfileStore persists user profiles. Get returns (nil, nil) when no
// profile exists: absence is an initialization path, not an error.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, userID int, p models.UserProfile) error
	UpdateProfile(ctx context.Context, userID int, p models.UserProfile) error
}

// StatsStore persists the long-lived per-user stats record. Get returns
// (nil, nil) when the user has no stats row yet.
type StatsStore interface {
	GetStats(ctx context.Context, userID int) (*models.UserStats, error)
	CreateStats(ctx context.Context, userID int, s models.UserStats) error
}

// ProgressStore persists per-day progress rows. Get returns (nil, nil) when
// the user has not acted on the date yet.
type ProgressStore interface {
	GetProgress(ctx context.Context, userID int, date string) (*models.DailyProgress, error)
	CreateProgress(ctx context.Context, p models.DailyProgress) error
	UpsertProgress(ctx context.Context, p models.DailyProgress) error
}

// CommitStore writes updated stats and the day's progress row in one
// transaction, so a reader never observes coins granted without the matching
// completion flag.
type CommitStore interface {
	CommitDay(ctx context.Context, userID int, stats models.UserStats, p models.DailyProgress, activityDate string) error
}

// VerificationLog appends verification payloads. Fire-and-forget from the
// session's perspective: its failure never blocks a completion.
type VerificationLog interface {
	SaveVerification(ctx context.Context, row models.VerificationRow) error
}

// Store is the full persistence surface a Service needs.
type Store interface {
	ProfileStore
	StatsStore
	ProgressStore
	CommitStore
	VerificationLog
}

// Service creates sessions and runs onboarding.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a Service over the given store.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Session is the single logical actor for one user and one calendar date.
// All mutations flow through it sequentially; it owns the in-memory state
// and keeps it consistent with the store.
type Session struct {
	UserID  int
	Date    string
	Profile models.UserProfile
	Stats   models.UserStats
	Day     *Day

	store Store
	log   *slog.Logger
}

// Today returns the local calendar date in the YYYY-MM-DD form used as the
// progress row key.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Onboard validates and stores a new profile, creates the baseline stats
// row (level 1, streak 1), and materializes today's progress from freshly
// generated targets.
func (s *Service) Onboard(ctx context.Context, userID int, profile models.UserProfile, date string) (*Session, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if err := s.store.CreateProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	stats := models.NewUserStats()
	if err := s.store.CreateStats(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("creating stats: %w", err)
	}

	day := NewDay(userID, date, plan.Targets(&profile))
	if err := s.store.CreateProgress(ctx, day.Progress); err != nil {
		return nil, fmt.Errorf("creating daily progress: %w", err)
	}

	return &Session{
		UserID: userID, Date: date,
		Profile: profile, Stats: stats, Day: day,
		store: s.store, log: s.log,
	}, nil
}

// Load hydrates a session for the given user and date. Missing stats or
// progress rows are created on the spot; a missing profile returns
// ErrNoProfile.
func (s *Service) Load(ctx context.Context, userID int, date string) (*Session, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNoProfile
	}

	stats, err := s.store.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading stats: %w", err)
	}
	if stats == nil {
		fresh := models.NewUserStats()
		if err := s.store.CreateStats(ctx, userID, fresh); err != nil {
			return nil, fmt.Errorf("creating stats: %w", err)
		}
		stats = &fresh
	}

	targets := plan.Targets(profile)

	progress, err := s.store.GetProgress(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("loading daily progress: %w", err)
	}

	var day *Day
	if progress != nil {
		day = Hydrate(targets, *progress)
	} else {
		day = NewDay(userID, date, targets)
		if err := s.store.CreateProgress(ctx, day.Progress); err != nil {
			return nil, fmt.Errorf("creating daily progress: %w", err)
		}
	}

	return &Session{
		UserID: userID, Date: date,
		Profile: *profile, Stats: *stats, Day: day,
		store: s.store, log: s.log,
	}, nil
}

// UpdateWater records a water amount and settles any resulting completion.
func (sess *Session) UpdateWater(ctx context.Context, liters float64) (*Result, error) {
	snapshot := sess.snapshot()
	event := sess.Day.UpdateWater(liters)
	return sess.settle(ctx, snapshot, event, nil)
}

// UpdateSleep records logged sleep hours and settles any resulting completion.
func (sess *Session) UpdateSleep(ctx context.Context, hours float64) (*Result, error) {
	snapshot := sess.snapshot()
	event := sess.Day.UpdateSleep(hours)
	return sess.settle(ctx, snapshot, event, nil)
}

// CompleteTask marks a discrete task done. The optional verification payload
// is logged but never gates the completion; a duplicate completion is a
// no-op returning a nil Result.
func (sess *Session) CompleteTask(ctx context.Context, kind models.TaskKind, v *models.VerificationData) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown task kind %q", kind)
	}

	snapshot := sess.snapshot()
	event := sess.Day.Complete(kind)
	if event == nil {
		return nil, nil
	}
	return sess.settle(ctx, snapshot, event, v)
}

type sessionSnapshot struct {
	stats    models.UserStats
	targets  models.DailyTargets
	progress models.DailyProgress
}

func (sess *Session) snapshot() sessionSnapshot {
	return sessionSnapshot{stats: sess.Stats, targets: sess.Day.Targets, progress: sess.Day.Progress}
}

func (sess *Session) restore(snap sessionSnapshot) {
	sess.Stats = snap.stats
	sess.Day.Targets = snap.targets
	sess.Day.Progress = snap.progress
}

// settle applies the reward engine for a completion event (if any) and
// persists the new state. On a write failure the in-memory state is rolled
// back to the snapshot, so optimistic state is never left applied.
func (sess *Session) settle(ctx context.Context, snap sessionSnapshot, event *Completion, v *models.VerificationData) (*Result, error) {
	if event == nil {
		if err := sess.store.UpsertProgress(ctx, sess.Day.Progress); err != nil {
			sess.restore(snap)
			return nil, fmt.Errorf("saving progress: %w", err)
		}
		return nil, nil
	}

	res := Apply(sess.Stats, &sess.Day.Progress, *event)
	sess.Stats = res.Stats

	if v != nil {
		sess.logVerification(ctx, event.Kind, v)
	}

	if err := sess.store.CommitDay(ctx, sess.UserID, sess.Stats, sess.Day.Progress, sess.Date); err != nil {
		sess.restore(snap)
		return nil, fmt.Errorf("committing completion: %w", err)
	}
	return &res, nil
}

// logVerification appends the payload to the verification log. Failures are
// logged and swallowed: verification is advisory.
func (sess *Session) logVerification(ctx context.Context, kind models.TaskKind, v *models.VerificationData) {
	name := sess.taskName(kind)
	row := models.VerificationRow{
		ID:         uuid.New(),
		UserID:     sess.UserID,
		TaskKind:   kind,
		TaskName:   name,
		ImageURL:   v.ImageURL,
		Latitude:   v.Location.Latitude,
		Longitude:  v.Location.Longitude,
		Address:    v.Location.Address,
		Verified:   v.AIVerdict.Verified,
		Confidence: v.AIVerdict.Confidence,
		Feedback:   v.AIVerdict.Feedback,
		VerifiedAt: v.Timestamp,
	}
	if row.VerifiedAt.IsZero() {
		row.VerifiedAt = time.Now()
	}
	if err := sess.store.SaveVerification(ctx, row); err != nil {
		sess.log.Warn("verification log save failed", "user_id", sess.UserID, "task", kind, "error", err)
	}
}

func (sess *Session) taskName(kind models.TaskKind) string {
	switch kind {
	case models.TaskWorkout:
		return sess.Day.Targets.Workout.Name
	case models.TaskDiet:
		if len(sess.Day.Targets.Diet.Meals) > 0 {
			return sess.Day.Targets.Diet.Meals[0].Name
		}
	}
	return string(kind)
}
