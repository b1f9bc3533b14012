package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/fitmyself/internal/models"
	"github.com/claude/fitmyself/internal/tracker"
)

// Sync wire shapes, shared with the offline logger client.

// SyncEntry is one queued log line from the offline logger. Kind selects the
// payload: water and sleep carry Amount, task carries Task.
type SyncEntry struct {
	Kind     string          `json:"kind"` // water | sleep | task
	Amount   float64         `json:"amount,omitempty"`
	Task     models.TaskKind `json:"task,omitempty"`
	Date     string          `json:"date"`
	LoggedAt time.Time       `json:"logged_at"`
}

// SyncRequest is a batch of queued entries, oldest first.
type SyncRequest struct {
	Entries []SyncEntry `json:"entries"`
}

// SyncResponse summarizes a replay. Duplicate task completions count as
// skipped, not as errors, so re-syncing a batch is harmless.
type SyncResponse struct {
	Applied int              `json:"applied"`
	Skipped int              `json:"skipped"`
	Reward  int              `json:"reward"`
	Stats   models.UserStats `json:"stats"`
}

// handleSync replays a batch of offline log entries through the tracker,
// one session load per entry so cross-date batches stay consistent.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	userID := userIDFromContext(r)
	var resp SyncResponse
	for i, entry := range req.Entries {
		sess, err := s.svc.Load(r.Context(), userID, requestDate(entry.Date))
		if errors.Is(err, tracker.ErrNoProfile) {
			writeError(w, http.StatusConflict, "no profile: onboard before syncing")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("entry %d: %v", i, err))
			return
		}

		var res *tracker.Result
		switch entry.Kind {
		case "water":
			res, err = sess.UpdateWater(r.Context(), entry.Amount)
		case "sleep":
			res, err = sess.UpdateSleep(r.Context(), entry.Amount)
		case "task":
			if !entry.Task.Valid() {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("entry %d: unknown task %q", i, entry.Task))
				return
			}
			res, err = sess.CompleteTask(r.Context(), entry.Task, nil)
			if err == nil && res == nil {
				resp.Skipped++
				continue
			}
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("entry %d: unknown kind %q", i, entry.Kind))
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("entry %d: %v", i, err))
			return
		}

		resp.Applied++
		if res != nil {
			resp.Reward += res.Reward
		}
	}

	if st, err := s.store.GetStats(r.Context(), userID); err == nil && st != nil {
		resp.Stats = *st
	}
	writeJSON(w, http.StatusOK, resp)
}
