package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) dailySummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	snap, err := h.ds.DailyPlan(ctx, uid, "")
	if err != nil {
		return nil, err
	}

	summary := map[string]any{
		"date":              snap.Date,
		"plans":             snap.Plans,
		"stats":             snap.Stats,
		"progress_fraction": snap.ProgressFraction,
		"potential_reward":  snap.PotentialReward,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
