// Package mcp exposes the tracker to AI assistants over the Model Context
// Protocol: read tools for plans and stats, write tools for logging, and a
// daily summary resource.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitMyself", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitMyself fitness tracker. Read daily workout/diet/water/sleep plans, log progress, complete tasks, and ask the coach. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetDailyPlan, Handler: h.getDailyPlan},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolLogWater, Handler: h.logWater},
		server.ServerTool{Tool: toolLogSleep, Handler: h.logSleep},
		server.ServerTool{Tool: toolCompleteTask, Handler: h.completeTask},
		server.ServerTool{Tool: toolCoachChat, Handler: h.coachChat},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resDailySummary, Handler: h.dailySummary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resDailySummary = mcp.NewResource(
	"fitmyself://daily_summary",
	"Daily Summary",
	mcp.WithResourceDescription("Today's plans with completion state, earned fitcoins, streak and level"),
	mcp.WithMIMEType("application/json"),
)
