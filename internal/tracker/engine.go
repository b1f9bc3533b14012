package tracker

import "github.com/claude/fitmyself/internal/models"

// Reward rules. A level is every 500 coins; leveling grants a flat 100 coin
// bonus; finishing all four categories in one day extends the streak and
// grants 50 coins, at most once per day.
const (
	coinsPerLevel = 500
	levelUpBonus  = 100
	streakBonus   = 50
)

// Result is the outcome of applying one completion event.
type Result struct {
	Stats          models.UserStats `json:"stats"`
	Reward         int              `json:"reward"`
	LeveledUp      bool             `json:"leveled_up"`
	StreakExtended bool             `json:"streak_extended"`
}

// Apply folds a completion event into the user's stats. The day ledger must
// already have the event's category marked completed; its StreakAwarded flag
// guards the once-per-day streak bonus and is set here when granted.
//
// The level check uses the coin total before the level bonus is added, and
// the bonus itself never re-triggers the check within the same event.
func Apply(stats models.UserStats, day *models.DailyProgress, c Completion) Result {
	res := Result{Reward: c.Reward}

	stats.TotalFitcoins += c.Reward
	stats.CompletedTasks++

	if newLevel := stats.TotalFitcoins/coinsPerLevel + 1; newLevel > stats.Level {
		stats.Level = newLevel
		stats.TotalFitcoins += levelUpBonus
		res.LeveledUp = true
	}

	// Only the event that completes the 4th category can cross this
	// threshold, and StreakAwarded keeps a same-day replay from paying twice.
	if day.CompletedCount() == 4 && !day.StreakAwarded {
		stats.Streak++
		stats.TotalFitcoins += streakBonus
		day.StreakAwarded = true
		res.StreakExtended = true
	}

	day.FitcoinsEarned += c.Reward

	res.Stats = stats
	return res
}
