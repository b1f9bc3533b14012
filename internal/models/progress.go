package models

// TaskKind identifies one of the four completable categories of a day.
type TaskKind string

const (
	TaskWorkout TaskKind = "workout"
	TaskDiet    TaskKind = "diet"
	TaskWater   TaskKind = "water"
	TaskSleep   TaskKind = "sleep"
)

// Valid reports whether k is one of the four task categories.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskWorkout, TaskDiet, TaskWater, TaskSleep:
		return true
	}
	return false
}

// DailyProgress is one row per user per calendar date. It is created the
// first time the user acts on a date and superseded (never merged) once the
// date rolls over. StreakAwarded records that the day's streak bonus has
// been granted, so a later event the same day cannot double-apply it.
type DailyProgress struct {
	UserID           int     `json:"user_id"`
	Date             string  `json:"date"` // YYYY-MM-DD, opaque key owned by the caller
	WorkoutCompleted bool    `json:"workout_completed"`
	DietCompleted    bool    `json:"diet_completed"`
	WaterCompleted   bool    `json:"water_completed"`
	SleepCompleted   bool    `json:"sleep_completed"`
	WaterTarget      float64 `json:"water_target"`
	WaterCurrent     float64 `json:"water_current"`
	SleepTarget      float64 `json:"sleep_target"`
	SleepActual      float64 `json:"sleep_actual"`
	FitcoinsEarned   int     `json:"fitcoins_earned"`
	StreakAwarded    bool    `json:"streak_awarded"`
}

// Completed reports the completion flag for the given task kind.
func (p *DailyProgress) Completed(kind TaskKind) bool {
	switch kind {
	case TaskWorkout:
		return p.WorkoutCompleted
	case TaskDiet:
		return p.DietCompleted
	case TaskWater:
		return p.WaterCompleted
	case TaskSleep:
		return p.SleepCompleted
	}
	return false
}

// CompletedCount returns how many of the four categories are done.
func (p *DailyProgress) CompletedCount() int {
	n := 0
	for _, done := range []bool{p.WorkoutCompleted, p.DietCompleted, p.WaterCompleted, p.SleepCompleted} {
		if done {
			n++
		}
	}
	return n
}
