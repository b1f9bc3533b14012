package mcp

import (
	"context"
	"time"

	"github.com/claude/fitmyself/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// validDate normalizes an optional YYYY-MM-DD argument. Empty means "today";
// anything unparseable is an error.
func validDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", err
	}
	return s, nil
}

// --- Tool definitions ---

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Get the user's running totals: fitcoins, streak, level, and completed task count."),
)

var toolGetDailyPlan = mcp.NewTool("get_daily_plan",
	mcp.WithDescription("Get the generated plans for a day: workout (exercises, sets, reps), diet (meals), water target and sleep target, each with its fitcoin reward and completion state."),
	mcp.WithString("date", mcp.Description("Day to read (YYYY-MM-DD). Defaults to today.")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Get a day's completion state: which of the four categories are done, logged water/sleep amounts, earned fitcoins, and overall fraction."),
	mcp.WithString("date", mcp.Description("Day to read (YYYY-MM-DD). Defaults to today.")),
)

var toolLogWater = mcp.NewTool("log_water",
	mcp.WithDescription("Record the user's total water intake for the day in liters. Reaching the daily target completes the water category and earns its reward."),
	mcp.WithNumber("liters", mcp.Required(), mcp.Description("Total liters drunk so far today")),
	mcp.WithString("date", mcp.Description("Day to log (YYYY-MM-DD). Defaults to today.")),
)

var toolLogSleep = mcp.NewTool("log_sleep",
	mcp.WithDescription("Record how many hours the user slept. Meeting the daily target completes the sleep category and earns its reward."),
	mcp.WithNumber("hours", mcp.Required(), mcp.Description("Hours slept (capped at 12)")),
	mcp.WithString("date", mcp.Description("Day to log (YYYY-MM-DD). Defaults to today.")),
)

var toolCompleteTask = mcp.NewTool("complete_task",
	mcp.WithDescription("Mark a task category done and collect its fitcoin reward. Completing all four categories in one day extends the streak."),
	mcp.WithString("task", mcp.Required(), mcp.Description("Task category"), mcp.Enum("workout", "diet", "water", "sleep")),
	mcp.WithString("date", mcp.Description("Day to complete (YYYY-MM-DD). Defaults to today.")),
)

var toolCoachChat = mcp.NewTool("coach_chat",
	mcp.WithDescription("Ask the FitBot coach a fitness, nutrition, or motivation question. The answer is tailored to the user's profile and stats."),
	mcp.WithString("message", mcp.Required(), mcp.Description("The question to ask")),
)

// --- Tool handlers ---

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.ds.Stats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("stats unavailable: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(st)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) getDailyPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := validDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	snap, err := h.ds.DailyPlan(ctx, UserIDFromContext(ctx), date)
	if err != nil {
		h.log.Error("mcp get_daily_plan", "error", err)
		return mcp.NewToolResultError("plan unavailable: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := validDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	snap, err := h.ds.DailyPlan(ctx, UserIDFromContext(ctx), date)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("progress unavailable: " + err.Error()), nil
	}

	progress := map[string]any{
		"date":              snap.Date,
		"workout_completed": snap.Plans.Workout.Completed,
		"diet_completed":    snap.Plans.Diet.Completed,
		"water_completed":   snap.Plans.Water.Completed,
		"sleep_completed":   snap.Plans.Sleep.Completed,
		"water_current":     snap.Plans.Water.Current,
		"water_target":      snap.Plans.Water.Target,
		"sleep_actual":      snap.Plans.Sleep.Actual,
		"sleep_target":      snap.Plans.Sleep.Target,
		"progress_fraction": snap.ProgressFraction,
		"potential_reward":  snap.PotentialReward,
	}
	result, err := mcp.NewToolResultJSON(progress)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) logWater(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	liters, err := req.RequireFloat("liters")
	if err != nil {
		return mcp.NewToolResultError("liters parameter is required"), nil
	}
	date, err := validDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	update, err := h.ds.LogWater(ctx, UserIDFromContext(ctx), date, liters)
	if err != nil {
		h.log.Error("mcp log_water", "error", err)
		return mcp.NewToolResultError("log failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(update)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) logSleep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hours, err := req.RequireFloat("hours")
	if err != nil {
		return mcp.NewToolResultError("hours parameter is required"), nil
	}
	date, err := validDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	update, err := h.ds.LogSleep(ctx, UserIDFromContext(ctx), date, hours)
	if err != nil {
		h.log.Error("mcp log_sleep", "error", err)
		return mcp.NewToolResultError("log failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(update)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) completeTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := req.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task parameter is required"), nil
	}
	kind := models.TaskKind(task)
	if !kind.Valid() {
		return mcp.NewToolResultError("unknown task: " + task), nil
	}
	date, err := validDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	update, err := h.ds.CompleteTask(ctx, UserIDFromContext(ctx), date, kind)
	if err != nil {
		h.log.Error("mcp complete_task", "error", err)
		return mcp.NewToolResultError("completion failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(update)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) coachChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message parameter is required"), nil
	}

	reply, err := h.ds.Chat(ctx, UserIDFromContext(ctx), message)
	if err != nil {
		h.log.Error("mcp coach_chat", "error", err)
		return mcp.NewToolResultError("coach unavailable: " + err.Error()), nil
	}
	return mcp.NewToolResultText(reply), nil
}
