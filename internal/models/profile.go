package models

import "fmt"

// Goal is the user's training objective. It is a closed enum: the plan
// generator is total over these four values and nothing else.
type Goal string

const (
	GoalMuscleGain   Goal = "muscle_gain"
	GoalStrengthGain Goal = "strength_gain"
	GoalStaminaGain  Goal = "stamina_gain"
	GoalFatLoss      Goal = "fat_loss"
)

// Valid reports whether g is one of the four known goals.
func (g Goal) Valid() bool {
	switch g {
	case GoalMuscleGain, GoalStrengthGain, GoalStaminaGain, GoalFatLoss:
		return true
	}
	return false
}

// Gender as collected at onboarding.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// UserProfile holds the onboarding data the plan generator reads.
// Immutable per user until explicitly edited.
type UserProfile struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
	Goal     Goal    `json:"goal"`
	Gender   Gender  `json:"gender"`
}

// Validate checks the onboarding ranges. A profile that fails validation is
// rejected before any plan generation happens.
func (p *UserProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 13 || p.Age > 100 {
		return fmt.Errorf("age %d out of range 13-100", p.Age)
	}
	if p.HeightCM < 120 || p.HeightCM > 250 {
		return fmt.Errorf("height %.1f out of range 120-250 cm", p.HeightCM)
	}
	if p.WeightKG < 30 || p.WeightKG > 200 {
		return fmt.Errorf("weight %.1f out of range 30-200 kg", p.WeightKG)
	}
	if !p.Goal.Valid() {
		return fmt.Errorf("unknown goal %q", p.Goal)
	}
	if !p.Gender.Valid() {
		return fmt.Errorf("unknown gender %q", p.Gender)
	}
	return nil
}
