package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/fitmyself/internal/models"
	"github.com/claude/fitmyself/internal/tracker"
)

// DaySnapshot is the merged view of one day's plans, progress and stats, as
// served by GET /api/v1/today.
type DaySnapshot struct {
	Date             string              `json:"date"`
	Plans            models.DailyTargets `json:"plans"`
	Stats            models.UserStats    `json:"stats"`
	ProgressFraction float64             `json:"progress_fraction"`
	PotentialReward  int                 `json:"potential_reward"`
}

// DayUpdate is a DaySnapshot plus the reward outcome of a mutation. Result
// is nil when the call did not complete a category.
type DayUpdate struct {
	DaySnapshot
	Result *tracker.Result `json:"result,omitempty"`
}

// DataSource abstracts the data layer for MCP tools. Both Local (in-process
// tracker) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Stats(ctx context.Context, userID int) (*models.UserStats, error)
	DailyPlan(ctx context.Context, userID int, date string) (*DaySnapshot, error)
	LogWater(ctx context.Context, userID int, date string, liters float64) (*DayUpdate, error)
	LogSleep(ctx context.Context, userID int, date string, hours float64) (*DayUpdate, error)
	CompleteTask(ctx context.Context, userID int, date string, kind models.TaskKind) (*DayUpdate, error)
	Chat(ctx context.Context, userID int, message string) (string, error)
}

// ChatClient answers coach questions. *verify.Client satisfies it.
type ChatClient interface {
	Chat(ctx context.Context, message, userContext string) (string, error)
}

// Local implements DataSource over the in-process tracker.
type Local struct {
	svc   *tracker.Service
	store tracker.Store
	chat  ChatClient
	log   *slog.Logger
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a Local data source over the given store. chat may be an
// unconfigured client; coach_chat then reports unavailability.
func NewLocal(store tracker.Store, chat ChatClient, log *slog.Logger) *Local {
	return &Local{
		svc:   tracker.NewService(store, log),
		store: store,
		chat:  chat,
		log:   log,
	}
}

func snapshotOf(sess *tracker.Session) DaySnapshot {
	return DaySnapshot{
		Date:             sess.Date,
		Plans:            sess.Day.Targets,
		Stats:            sess.Stats,
		ProgressFraction: sess.Day.ProgressFraction(),
		PotentialReward:  sess.Day.Targets.PotentialReward(),
	}
}

func orToday(date string) string {
	if date == "" {
		return tracker.Today()
	}
	return date
}

func (l *Local) Stats(ctx context.Context, userID int) (*models.UserStats, error) {
	st, err := l.store.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("no stats: onboarding required")
	}
	return st, nil
}

func (l *Local) DailyPlan(ctx context.Context, userID int, date string) (*DaySnapshot, error) {
	sess, err := l.svc.Load(ctx, userID, orToday(date))
	if err != nil {
		return nil, err
	}
	snap := snapshotOf(sess)
	return &snap, nil
}

func (l *Local) LogWater(ctx context.Context, userID int, date string, liters float64) (*DayUpdate, error) {
	sess, err := l.svc.Load(ctx, userID, orToday(date))
	if err != nil {
		return nil, err
	}
	res, err := sess.UpdateWater(ctx, liters)
	if err != nil {
		return nil, err
	}
	return &DayUpdate{DaySnapshot: snapshotOf(sess), Result: res}, nil
}

func (l *Local) LogSleep(ctx context.Context, userID int, date string, hours float64) (*DayUpdate, error) {
	sess, err := l.svc.Load(ctx, userID, orToday(date))
	if err != nil {
		return nil, err
	}
	res, err := sess.UpdateSleep(ctx, hours)
	if err != nil {
		return nil, err
	}
	return &DayUpdate{DaySnapshot: snapshotOf(sess), Result: res}, nil
}

func (l *Local) CompleteTask(ctx context.Context, userID int, date string, kind models.TaskKind) (*DayUpdate, error) {
	sess, err := l.svc.Load(ctx, userID, orToday(date))
	if err != nil {
		return nil, err
	}
	res, err := sess.CompleteTask(ctx, kind, nil)
	if err != nil {
		return nil, err
	}
	return &DayUpdate{DaySnapshot: snapshotOf(sess), Result: res}, nil
}

func (l *Local) Chat(ctx context.Context, userID int, message string) (string, error) {
	userContext := ""
	if p, err := l.store.GetProfile(ctx, userID); err == nil && p != nil {
		userContext = fmt.Sprintf("name: %s, age: %d, goal: %s", p.Name, p.Age, p.Goal)
		if st, err := l.store.GetStats(ctx, userID); err == nil && st != nil {
			userContext += fmt.Sprintf(", level: %d, streak: %d days", st.Level, st.Streak)
		}
	}
	return l.chat.Chat(ctx, message, userContext)
}
