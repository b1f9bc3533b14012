package tracker

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/claude/fitmyself/internal/models"
)

// fakeStore is an in-memory Store with injectable write failures.
type fakeStore struct {
	profiles      map[int]models.UserProfile
	stats         map[int]models.UserStats
	progress      map[string]models.DailyProgress
	verifications []models.VerificationRow

	failCommit bool
	failUpsert bool
	failVerify bool
}

var errInjected = errors.New("injected failure")

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: map[int]models.UserProfile{},
		stats:    map[int]models.UserStats{},
		progress: map[string]models.DailyProgress{},
	}
}

func progressKey(userID int, date string) string {
	return date + "/" + string(rune('0'+userID))
}

func (f *fakeStore) GetProfile(_ context.Context, userID int) (*models.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) CreateProfile(_ context.Context, userID int, p models.UserProfile) error {
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, userID int, p models.UserProfile) error {
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) GetStats(_ context.Context, userID int) (*models.UserStats, error) {
	s, ok := f.stats[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStore) CreateStats(_ context.Context, userID int, s models.UserStats) error {
	f.stats[userID] = s
	return nil
}

func (f *fakeStore) GetProgress(_ context.Context, userID int, date string) (*models.DailyProgress, error) {
	p, ok := f.progress[progressKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) CreateProgress(_ context.Context, p models.DailyProgress) error {
	f.progress[progressKey(p.UserID, p.Date)] = p
	return nil
}

func (f *fakeStore) UpsertProgress(_ context.Context, p models.DailyProgress) error {
	if f.failUpsert {
		return errInjected
	}
	f.progress[progressKey(p.UserID, p.Date)] = p
	return nil
}

func (f *fakeStore) CommitDay(_ context.Context, userID int, stats models.UserStats, p models.DailyProgress, _ string) error {
	if f.failCommit {
		return errInjected
	}
	f.stats[userID] = stats
	f.progress[progressKey(userID, p.Date)] = p
	return nil
}

func (f *fakeStore) SaveVerification(_ context.Context, row models.VerificationRow) error {
	if f.failVerify {
		return errInjected
	}
	f.verifications = append(f.verifications, row)
	return nil
}

const testDate = "2026-08-30"

func newTestSession(t *testing.T) (*Session, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := NewService(store, slog.Default())
	sess, err := svc.Onboard(context.Background(), 1, *testProfile(), testDate)
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	return sess, store
}

// TestOnboardCreatesBaseline verifies onboarding creates the stats baseline
// (level 1, streak 1, zero coins) and materializes today's progress row.
func TestOnboardCreatesBaseline(t *testing.T) {
	sess, store := newTestSession(t)

	if sess.Stats.Level != 1 || sess.Stats.Streak != 1 || sess.Stats.TotalFitcoins != 0 {
		t.Errorf("baseline stats = %+v", sess.Stats)
	}
	if _, ok := store.progress[progressKey(1, testDate)]; !ok {
		t.Error("progress row not created at onboarding")
	}
	if sess.Day.Progress.WaterTarget == 0 || sess.Day.Progress.SleepTarget == 0 {
		t.Error("targets not materialized onto the progress row")
	}
}

// TestOnboardRejectsInvalidProfile verifies validation runs before any write.
func TestOnboardRejectsInvalidProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	bad := *testProfile()
	bad.Age = 7
	if _, err := svc.Onboard(context.Background(), 1, bad, testDate); err == nil {
		t.Fatal("expected validation error")
	}
	if len(store.profiles) != 0 {
		t.Error("invalid profile was persisted")
	}
}

// TestLoadWithoutProfile verifies the ErrNoProfile initialization signal.
func TestLoadWithoutProfile(t *testing.T) {
	svc := NewService(newFakeStore(), slog.Default())
	if _, err := svc.Load(context.Background(), 9, testDate); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("err = %v, want ErrNoProfile", err)
	}
}

// TestLoadHydratesExistingDay verifies a second session on the same date
// sees the persisted completion state instead of fresh targets.
func TestLoadHydratesExistingDay(t *testing.T) {
	sess, store := newTestSession(t)
	if _, err := sess.CompleteTask(context.Background(), models.TaskWorkout, nil); err != nil {
		t.Fatal(err)
	}

	svc := NewService(store, slog.Default())
	again, err := svc.Load(context.Background(), 1, testDate)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Day.Progress.WorkoutCompleted {
		t.Error("reloaded session lost workout completion")
	}
	if again.Stats.TotalFitcoins != 150 {
		t.Errorf("reloaded coins = %d, want 150", again.Stats.TotalFitcoins)
	}
}

// TestFullDayScenario runs the reference end-to-end flow: all four tasks on
// one day from a fresh start yields 425 coins, streak 2 (onboarding starts
// at 1), level 1.
func TestFullDayScenario(t *testing.T) {
	sess, store := newTestSession(t)
	ctx := context.Background()

	if _, err := sess.CompleteTask(ctx, models.TaskWorkout, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.CompleteTask(ctx, models.TaskDiet, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.UpdateWater(ctx, sess.Day.Targets.Water.Target); err != nil {
		t.Fatal(err)
	}
	res, err := sess.UpdateSleep(ctx, sess.Day.Targets.Sleep.Target)
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || !res.StreakExtended {
		t.Fatalf("final completion result = %+v, want streak extension", res)
	}

	if sess.Stats.TotalFitcoins != 425 {
		t.Errorf("coins = %d, want 425", sess.Stats.TotalFitcoins)
	}
	if sess.Stats.Streak != 2 {
		t.Errorf("streak = %d, want 2", sess.Stats.Streak)
	}
	if sess.Stats.Level != 1 {
		t.Errorf("level = %d, want 1", sess.Stats.Level)
	}
	if sess.Stats.CompletedTasks != 4 {
		t.Errorf("completed tasks = %d, want 4", sess.Stats.CompletedTasks)
	}

	persisted := store.stats[1]
	if persisted != sess.Stats {
		t.Errorf("persisted stats %+v != session stats %+v", persisted, sess.Stats)
	}
}

// TestDuplicateCompletionIsNoop verifies rapid double submission: the second
// call returns no result and grants nothing.
func TestDuplicateCompletionIsNoop(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	first, err := sess.CompleteTask(ctx, models.TaskWorkout, nil)
	if err != nil || first == nil {
		t.Fatalf("first completion: res=%v err=%v", first, err)
	}
	second, err := sess.CompleteTask(ctx, models.TaskWorkout, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second != nil {
		t.Errorf("duplicate completion granted %+v", second)
	}
	if sess.Stats.TotalFitcoins != 150 {
		t.Errorf("coins = %d, want 150", sess.Stats.TotalFitcoins)
	}
}

// TestCommitFailureRollsBack verifies a failed persist leaves the in-memory
// session at its last known-good state: no coins, no completion flag.
func TestCommitFailureRollsBack(t *testing.T) {
	sess, store := newTestSession(t)
	store.failCommit = true

	if _, err := sess.CompleteTask(context.Background(), models.TaskWorkout, nil); err == nil {
		t.Fatal("expected commit error")
	}
	if sess.Stats.TotalFitcoins != 0 {
		t.Errorf("coins = %d after failed commit, want 0", sess.Stats.TotalFitcoins)
	}
	if sess.Day.Progress.WorkoutCompleted {
		t.Error("completion flag left set after failed commit")
	}
	if sess.Day.Targets.Workout.Completed {
		t.Error("target completion left set after failed commit")
	}

	// The task must be completable again once the store recovers.
	store.failCommit = false
	res, err := sess.CompleteTask(context.Background(), models.TaskWorkout, nil)
	if err != nil || res == nil {
		t.Fatalf("retry after recovery: res=%v err=%v", res, err)
	}
}

// TestUpsertFailureRollsBackAmount verifies a failed water write restores
// the previous amount.
func TestUpsertFailureRollsBack(t *testing.T) {
	sess, store := newTestSession(t)
	ctx := context.Background()

	if _, err := sess.UpdateWater(ctx, 1.0); err != nil {
		t.Fatal(err)
	}
	store.failUpsert = true
	if _, err := sess.UpdateWater(ctx, 2.0); err == nil {
		t.Fatal("expected upsert error")
	}
	if sess.Day.Progress.WaterCurrent != 1.0 {
		t.Errorf("water = %v after failed write, want 1.0", sess.Day.Progress.WaterCurrent)
	}
}

// TestVerificationIsAdvisory verifies an unverified AI verdict still
// completes the task, and a failing verification log does not block it.
func TestVerificationIsAdvisory(t *testing.T) {
	sess, store := newTestSession(t)
	store.failVerify = true

	v := &models.VerificationData{
		ImageURL:  "https://example.com/pic.jpg",
		AIVerdict: models.AIVerdict{Verified: false, Confidence: 20, Feedback: "not clearly a workout"},
	}
	res, err := sess.CompleteTask(context.Background(), models.TaskWorkout, v)
	if err != nil {
		t.Fatalf("completion blocked by verification: %v", err)
	}
	if res == nil || res.Reward != 150 {
		t.Errorf("result = %+v, want workout reward", res)
	}
}

// TestVerificationLogged verifies the payload lands in the verification log
// with the workout's name attached.
func TestVerificationLogged(t *testing.T) {
	sess, store := newTestSession(t)

	v := &models.VerificationData{
		ImageURL:  "https://example.com/pic.jpg",
		Location:  models.Location{Latitude: 52.5, Longitude: 13.4},
		AIVerdict: models.AIVerdict{Verified: true, Confidence: 90, Feedback: "push-ups visible"},
	}
	if _, err := sess.CompleteTask(context.Background(), models.TaskWorkout, v); err != nil {
		t.Fatal(err)
	}

	if len(store.verifications) != 1 {
		t.Fatalf("verification rows = %d, want 1", len(store.verifications))
	}
	row := store.verifications[0]
	if row.TaskName != "Muscle Building Workout" {
		t.Errorf("task name = %q", row.TaskName)
	}
	if !row.Verified || row.Confidence != 90 {
		t.Errorf("verdict not preserved: %+v", row)
	}
	if row.VerifiedAt.IsZero() {
		t.Error("verified_at not defaulted")
	}
}
