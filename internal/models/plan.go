package models

import "github.com/google/uuid"

// Exercise is one entry in a workout plan.
type Exercise struct {
	Name     string `json:"name"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
	RestTime string `json:"rest_time"`
}

// WorkoutPlan is the day's generated workout. Everything except ID is a pure
// function of the profile's goal.
type WorkoutPlan struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
	Fitcoins  int        `json:"fitcoins"`
	Completed bool       `json:"completed"`
}

// Meal is one entry in a diet plan.
type Meal struct {
	Name     string   `json:"name"`
	Time     string   `json:"time"`
	Foods    []string `json:"foods"`
	Calories int      `json:"calories"`
}

// DietPlan is the day's generated meal schedule.
type DietPlan struct {
	ID        uuid.UUID `json:"id"`
	Meals     []Meal    `json:"meals"`
	Fitcoins  int       `json:"fitcoins"`
	Completed bool      `json:"completed"`
}

// WaterGoal is the day's hydration target in liters.
type WaterGoal struct {
	Target    float64 `json:"target"`
	Current   float64 `json:"current"`
	Fitcoins  int     `json:"fitcoins"`
	Completed bool    `json:"completed"`
}

// SleepGoal is the day's sleep target in hours.
type SleepGoal struct {
	Target    float64 `json:"target"`
	Actual    float64 `json:"actual"`
	Fitcoins  int     `json:"fitcoins"`
	Completed bool    `json:"completed"`
}

// DailyTargets bundles the four generated plans for one day.
type DailyTargets struct {
	Workout WorkoutPlan `json:"workout"`
	Diet    DietPlan    `json:"diet"`
	Water   WaterGoal   `json:"water"`
	Sleep   SleepGoal   `json:"sleep"`
}

// Reward returns the flat fitcoin reward for the given task kind.
func (t *DailyTargets) Reward(kind TaskKind) int {
	switch kind {
	case TaskWorkout:
		return t.Workout.Fitcoins
	case TaskDiet:
		return t.Diet.Fitcoins
	case TaskWater:
		return t.Water.Fitcoins
	case TaskSleep:
		return t.Sleep.Fitcoins
	}
	return 0
}

// PotentialReward is the sum of the four categories' rewards. Constant for
// the day, independent of completion state.
func (t *DailyTargets) PotentialReward() int {
	return t.Workout.Fitcoins + t.Diet.Fitcoins + t.Water.Fitcoins + t.Sleep.Fitcoins
}
