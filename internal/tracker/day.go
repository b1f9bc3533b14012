// Package tracker holds the per-day progress ledger and the reward engine.
// All state transitions are pure; persistence goes through the Store
// interfaces and is rolled back in memory when a write fails.
package tracker

import (
	"github.com/claude/fitmyself/internal/models"
)

// maxSleepHours caps logged sleep regardless of the target.
const maxSleepHours = 12

// Completion is the event emitted when a task category finishes. It is the
// engine's only input.
type Completion struct {
	Kind   models.TaskKind
	Reward int
}

// Day is the mutable ledger for one user and one calendar date. Targets are
// the day's generated plans; Progress is the persisted row merged over them.
type Day struct {
	Targets  models.DailyTargets
	Progress models.DailyProgress
}

// NewDay initializes a fresh ledger from generated targets. Used when no
// progress row exists yet for the date.
func NewDay(userID int, date string, targets models.DailyTargets) *Day {
	return &Day{
		Targets: targets,
		Progress: models.DailyProgress{
			UserID:      userID,
			Date:        date,
			WaterTarget: targets.Water.Target,
			SleepTarget: targets.Sleep.Target,
		},
	}
}

// Hydrate merges a persisted progress row over freshly generated targets.
// The stored flags and amounts win; target values come from the generator.
func Hydrate(targets models.DailyTargets, progress models.DailyProgress) *Day {
	targets.Workout.Completed = progress.WorkoutCompleted
	targets.Diet.Completed = progress.DietCompleted
	targets.Water.Completed = progress.WaterCompleted
	targets.Water.Current = progress.WaterCurrent
	targets.Sleep.Completed = progress.SleepCompleted
	targets.Sleep.Actual = progress.SleepActual
	progress.WaterTarget = targets.Water.Target
	progress.SleepTarget = targets.Sleep.Target
	return &Day{Targets: targets, Progress: progress}
}

// UpdateWater records a new water amount, clamped into [0, target]. Reaching
// the target completes the category exactly once: further updates at or
// above the target return no event.
func (d *Day) UpdateWater(liters float64) *Completion {
	liters = clamp(liters, 0, d.Targets.Water.Target)
	d.Targets.Water.Current = liters
	d.Progress.WaterCurrent = liters

	if liters >= d.Targets.Water.Target && !d.Progress.WaterCompleted {
		d.setCompleted(models.TaskWater)
		return &Completion{Kind: models.TaskWater, Reward: d.Targets.Water.Fitcoins}
	}
	return nil
}

// UpdateSleep records logged sleep hours, clamped into [0, 12]. The upper
// bound is fixed and independent of the target. Same once-only completion
// rule as water.
func (d *Day) UpdateSleep(hours float64) *Completion {
	hours = clamp(hours, 0, maxSleepHours)
	d.Targets.Sleep.Actual = hours
	d.Progress.SleepActual = hours

	if hours >= d.Targets.Sleep.Target && !d.Progress.SleepCompleted {
		d.setCompleted(models.TaskSleep)
		return &Completion{Kind: models.TaskSleep, Reward: d.Targets.Sleep.Fitcoins}
	}
	return nil
}

// Complete marks a discrete task (workout or diet) done. Settable once per
// day: if the flag is already set the call is a no-op and returns nil, which
// deduplicates rapid double submissions.
func (d *Day) Complete(kind models.TaskKind) *Completion {
	if d.Progress.Completed(kind) {
		return nil
	}
	d.setCompleted(kind)
	return &Completion{Kind: kind, Reward: d.Targets.Reward(kind)}
}

// ProgressFraction returns the completed share of the four categories.
func (d *Day) ProgressFraction() float64 {
	return float64(d.Progress.CompletedCount()) / 4
}

func (d *Day) setCompleted(kind models.TaskKind) {
	switch kind {
	case models.TaskWorkout:
		d.Progress.WorkoutCompleted = true
		d.Targets.Workout.Completed = true
	case models.TaskDiet:
		d.Progress.DietCompleted = true
		d.Targets.Diet.Completed = true
	case models.TaskWater:
		d.Progress.WaterCompleted = true
		d.Targets.Water.Completed = true
	case models.TaskSleep:
		d.Progress.SleepCompleted = true
		d.Targets.Sleep.Completed = true
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
