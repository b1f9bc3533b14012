package plan

import (
	"reflect"
	"testing"

	"github.com/claude/fitmyself/internal/models"
	"github.com/google/uuid"
)

func profile(weight float64, age int, goal models.Goal) *models.UserProfile {
	return &models.UserProfile{
		Name: "t", Age: age, HeightCM: 175, WeightKG: weight,
		Goal: goal, Gender: models.GenderFemale,
	}
}

// TestWaterTargets verifies the 35 ml/kg base plus goal offset, rounded to
// the nearest 0.25 L with halves up. The 70 kg fat_loss case sits exactly
// between grid points (2.85 L = 11.4 steps) and must land on 2.75.
func TestWaterTargets(t *testing.T) {
	tests := []struct {
		weight float64
		goal   models.Goal
		want   float64
	}{
		{70, models.GoalFatLoss, 2.75},
		{70, models.GoalMuscleGain, 3.0},   // 2.45 + 0.5 = 2.95 -> 3.0
		{70, models.GoalStrengthGain, 2.75}, // 2.45 + 0.3 = 2.75 exact
		{70, models.GoalStaminaGain, 3.25},  // 2.45 + 0.7 = 3.15 -> 3.25
		{80, models.GoalMuscleGain, 3.25},   // 2.8 + 0.5 = 3.3 -> 3.25
		{50, models.GoalFatLoss, 2.25},      // 1.75 + 0.4 = 2.15 -> 2.25
	}

	for _, tt := range tests {
		got := Water(profile(tt.weight, 30, tt.goal))
		if got.Target != tt.want {
			t.Errorf("Water(weight=%.0f, goal=%s) target = %v, want %v",
				tt.weight, tt.goal, got.Target, tt.want)
		}
		if got.Fitcoins != 50 {
			t.Errorf("water fitcoins = %d, want 50", got.Fitcoins)
		}
		if got.Current != 0 || got.Completed {
			t.Errorf("fresh water goal should start at 0 and incomplete")
		}
	}
}

// TestSleepTargets verifies the age bands and goal offsets on the 0.5 h grid.
func TestSleepTargets(t *testing.T) {
	tests := []struct {
		age  int
		goal models.Goal
		want float64
	}{
		{30, models.GoalMuscleGain, 8.5},
		{30, models.GoalStrengthGain, 8.5},
		{30, models.GoalFatLoss, 8},
		{30, models.GoalStaminaGain, 8},
		{16, models.GoalFatLoss, 9},
		{16, models.GoalMuscleGain, 9.5},
		{20, models.GoalStaminaGain, 8.5},
		{25, models.GoalMuscleGain, 9},
		{65, models.GoalFatLoss, 7.5},
		{70, models.GoalStrengthGain, 8},
	}

	for _, tt := range tests {
		got := Sleep(profile(70, tt.age, tt.goal))
		if got.Target != tt.want {
			t.Errorf("Sleep(age=%d, goal=%s) target = %v, want %v",
				tt.age, tt.goal, got.Target, tt.want)
		}
		if got.Fitcoins != 75 {
			t.Errorf("sleep fitcoins = %d, want 75", got.Fitcoins)
		}
	}
}

// TestGenerationDeterministic verifies that identical profiles produce
// identical targets. Only the plan IDs may differ between calls.
func TestGenerationDeterministic(t *testing.T) {
	for _, goal := range []models.Goal{
		models.GoalMuscleGain, models.GoalStrengthGain,
		models.GoalStaminaGain, models.GoalFatLoss,
	} {
		p := profile(70, 30, goal)
		a, b := Targets(p), Targets(p)

		a.Workout.ID, b.Workout.ID = uuid.Nil, uuid.Nil
		a.Diet.ID, b.Diet.ID = uuid.Nil, uuid.Nil
		if !reflect.DeepEqual(a, b) {
			t.Errorf("goal %s: repeated generation differs", goal)
		}
	}
}

// TestWorkoutTemplates verifies each goal maps to its fixed template with
// the expected reward and exercise count.
func TestWorkoutTemplates(t *testing.T) {
	tests := []struct {
		goal     models.Goal
		name     string
		fitcoins int
	}{
		{models.GoalMuscleGain, "Muscle Building Workout", 150},
		{models.GoalStrengthGain, "Strength Training", 200},
		{models.GoalStaminaGain, "Cardio & Endurance", 120},
		{models.GoalFatLoss, "Fat Burning Circuit", 180},
	}

	for _, tt := range tests {
		got := Workout(profile(70, 30, tt.goal))
		if got.Name != tt.name {
			t.Errorf("Workout(%s) name = %q, want %q", tt.goal, got.Name, tt.name)
		}
		if got.Fitcoins != tt.fitcoins {
			t.Errorf("Workout(%s) fitcoins = %d, want %d", tt.goal, got.Fitcoins, tt.fitcoins)
		}
		if len(got.Exercises) != 5 {
			t.Errorf("Workout(%s) has %d exercises, want 5", tt.goal, len(got.Exercises))
		}
		if got.Completed {
			t.Errorf("Workout(%s) should start incomplete", tt.goal)
		}
	}
}

// TestDietTemplates verifies the meal schedules: four meals per goal, flat
// 100 coin reward.
func TestDietTemplates(t *testing.T) {
	for _, goal := range []models.Goal{
		models.GoalMuscleGain, models.GoalStrengthGain,
		models.GoalStaminaGain, models.GoalFatLoss,
	} {
		got := Diet(profile(70, 30, goal))
		if len(got.Meals) != 4 {
			t.Errorf("Diet(%s) has %d meals, want 4", goal, len(got.Meals))
		}
		if got.Fitcoins != 100 {
			t.Errorf("Diet(%s) fitcoins = %d, want 100", goal, got.Fitcoins)
		}
		for _, m := range got.Meals {
			if m.Name == "" || m.Time == "" || len(m.Foods) == 0 || m.Calories <= 0 {
				t.Errorf("Diet(%s) meal %+v is incomplete", goal, m)
			}
		}
	}
}

// TestPotentialReward verifies the end-to-end reward sum for the reference
// profile: 150 + 100 + 50 + 75.
func TestPotentialReward(t *testing.T) {
	targets := Targets(profile(70, 30, models.GoalMuscleGain))
	if got := targets.PotentialReward(); got != 375 {
		t.Errorf("PotentialReward = %d, want 375", got)
	}
}

// TestRoundToGrid pins the rounding rule: halves round up in step units.
func TestRoundToGrid(t *testing.T) {
	tests := []struct {
		v, step, want float64
	}{
		{2.85, 0.25, 2.75}, // 11.4 steps -> 11
		{2.875, 0.25, 3.0}, // 11.5 steps -> 12 (half up)
		{2.95, 0.25, 3.0},
		{8.25, 0.5, 8.5}, // 16.5 steps -> 17 (half up)
		{8.2, 0.5, 8.0},
		{0, 0.25, 0},
	}
	for _, tt := range tests {
		if got := roundToGrid(tt.v, tt.step); got != tt.want {
			t.Errorf("roundToGrid(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
	}
}
