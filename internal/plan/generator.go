// Package plan generates the four daily targets from a user profile.
// Generation is deterministic: identical (weight, age, goal) always yields
// identical targets. Only the plan IDs vary between calls.
package plan

import (
	"math"

	"github.com/claude/fitmyself/internal/models"
	"github.com/google/uuid"
)

// Rewards that do not depend on the goal.
const (
	dietReward  = 100
	waterReward = 50
	sleepReward = 75
)

// waterAdjustments is the per-goal offset in liters on top of the
// 35 ml/kg base requirement.
var waterAdjustments = map[models.Goal]float64{
	models.GoalMuscleGain:   0.5,
	models.GoalStrengthGain: 0.3,
	models.GoalStaminaGain:  0.7,
	models.GoalFatLoss:      0.4,
}

// sleepAdjustments is the per-goal offset in hours on top of the age-based
// recommendation. Muscle and strength work get extra recovery time.
var sleepAdjustments = map[models.Goal]float64{
	models.GoalMuscleGain:   0.5,
	models.GoalStrengthGain: 0.5,
	models.GoalStaminaGain:  0,
	models.GoalFatLoss:      0,
}

// Workout returns the goal's workout template with a fresh ID.
// Panics on an unknown goal: the enum is closed and validated at the edge,
// so an unknown value here is a programmer error.
func Workout(p *models.UserProfile) models.WorkoutPlan {
	tmpl, ok := workoutTemplates[p.Goal]
	if !ok {
		panic("plan: unknown goal " + string(p.Goal))
	}
	return models.WorkoutPlan{
		ID:        uuid.New(),
		Name:      tmpl.name,
		Exercises: tmpl.exercises,
		Fitcoins:  tmpl.fitcoins,
	}
}

// Diet returns the goal's meal schedule with a fresh ID.
func Diet(p *models.UserProfile) models.DietPlan {
	meals, ok := dietTemplates[p.Goal]
	if !ok {
		panic("plan: unknown goal " + string(p.Goal))
	}
	return models.DietPlan{
		ID:       uuid.New(),
		Meals:    meals,
		Fitcoins: dietReward,
	}
}

// Water returns the hydration target: 35 ml per kg of body weight plus a
// per-goal offset, rounded to the nearest 0.25 L (half rounds up).
func Water(p *models.UserProfile) models.WaterGoal {
	adj, ok := waterAdjustments[p.Goal]
	if !ok {
		panic("plan: unknown goal " + string(p.Goal))
	}
	base := p.WeightKG * 35 / 1000
	return models.WaterGoal{
		Target:   roundToGrid(base+adj, 0.25),
		Fitcoins: waterReward,
	}
}

// Sleep returns the sleep target: an age-band recommendation plus a per-goal
// offset, rounded to the nearest 0.5 h (half rounds up).
func Sleep(p *models.UserProfile) models.SleepGoal {
	adj, ok := sleepAdjustments[p.Goal]
	if !ok {
		panic("plan: unknown goal " + string(p.Goal))
	}

	var base float64
	switch {
	case p.Age < 18:
		base = 9
	case p.Age < 26:
		base = 8.5
	case p.Age < 65:
		base = 8
	default:
		base = 7.5
	}

	return models.SleepGoal{
		Target:   roundToGrid(base+adj, 0.5),
		Fitcoins: sleepReward,
	}
}

// Targets generates all four daily targets for a profile.
func Targets(p *models.UserProfile) models.DailyTargets {
	return models.DailyTargets{
		Workout: Workout(p),
		Diet:    Diet(p),
		Water:   Water(p),
		Sleep:   Sleep(p),
	}
}

// roundToGrid rounds v to the nearest multiple of step, with halves rounding
// up (2.85 on a 0.25 grid is 11.4 steps and lands on 2.75, not 3.0).
func roundToGrid(v, step float64) float64 {
	return math.Floor(v/step+0.5) * step
}
