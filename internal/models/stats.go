package models

// UserStats is the long-lived per-user record the reward engine mutates.
// TotalFitcoins and CompletedTasks only ever grow; Level never decreases.
type UserStats struct {
	TotalFitcoins  int `json:"total_fitcoins"`
	Streak         int `json:"streak"`
	Level          int `json:"level"`
	CompletedTasks int `json:"completed_tasks"`
}

// NewUserStats returns the onboarding baseline: level 1, streak 1, no coins.
func NewUserStats() UserStats {
	return UserStats{Streak: 1, Level: 1}
}
