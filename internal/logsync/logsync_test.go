package logsync

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/fitmyself/internal/models"
)

func testState(t *testing.T) *StateDB {
	t.Helper()
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestQueueRoundtrip verifies enqueue, pending order, and marking synced.
func TestQueueRoundtrip(t *testing.T) {
	state := testState(t)

	entries := []Entry{
		{Kind: "water", Amount: 2.5, Date: "2026-03-01"},
		{Kind: "sleep", Amount: 8, Date: "2026-03-01"},
		{Kind: "task", Task: "workout", Date: "2026-03-02"},
	}
	for _, e := range entries {
		if err := state.Enqueue(e); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := state.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(pending))
	}
	if pending[0].Kind != "water" || pending[2].Task != "workout" {
		t.Errorf("order wrong: %+v", pending)
	}
	if pending[0].LoggedAt.IsZero() {
		t.Error("logged_at not defaulted")
	}

	if err := state.MarkSynced([]int64{pending[0].ID, pending[1].ID}); err != nil {
		t.Fatal(err)
	}
	pending, err = state.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Kind != "task" {
		t.Errorf("after marking, pending = %+v", pending)
	}
}

// TestSyncerRun verifies a full replay: batches posted with the API key,
// accepted entries marked synced, and stats accumulated.
func TestSyncerRun(t *testing.T) {
	var gotKey string
	var gotEntries int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		var req struct {
			Entries []syncEntry `json:"entries"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		gotEntries += len(req.Entries)
		json.NewEncoder(w).Encode(SyncResult{
			Applied: len(req.Entries) - 1,
			Skipped: 1,
			Reward:  200,
			Stats:   models.UserStats{TotalFitcoins: 200, Streak: 1, Level: 1},
		})
	}))
	defer srv.Close()

	state := testState(t)
	syncer := New(NewClient(srv.URL, "test-key"), state, 50, discard())

	if err := syncer.LogWater(3.0, "2026-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := syncer.LogTask(models.TaskWorkout, "2026-03-01"); err != nil {
		t.Fatal(err)
	}

	stats, err := syncer.Run()
	if err != nil {
		t.Fatal(err)
	}
	if gotKey != "test-key" {
		t.Errorf("api key = %q", gotKey)
	}
	if gotEntries != 2 {
		t.Errorf("server received %d entries, want 2", gotEntries)
	}
	if stats.Sent != 2 || stats.Applied != 1 || stats.Skipped != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Server.TotalFitcoins != 200 {
		t.Errorf("server stats = %+v", stats.Server)
	}

	// Everything synced; a second run sends nothing
	stats, err = syncer.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Queued != 0 {
		t.Errorf("second run queued = %d, want 0", stats.Queued)
	}
}

// TestSyncerKeepsQueueOnFailure verifies entries stay pending when the
// server rejects the batch.
func TestSyncerKeepsQueueOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no profile"}`, http.StatusConflict)
	}))
	defer srv.Close()

	state := testState(t)
	syncer := New(NewClient(srv.URL, "test-key"), state, 50, discard())
	if err := syncer.LogSleep(8, "2026-03-01"); err != nil {
		t.Fatal(err)
	}

	if _, err := syncer.Run(); err == nil {
		t.Fatal("expected error from rejected batch")
	}

	pending, err := state.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("pending = %d, want 1 (entry must survive failure)", len(pending))
	}
}

// TestLogTaskRejectsUnknownKind verifies validation happens before queueing.
func TestLogTaskRejectsUnknownKind(t *testing.T) {
	state := testState(t)
	syncer := New(NewClient("http://unused", "k"), state, 50, discard())

	if err := syncer.LogTask("meditation", ""); err == nil {
		t.Error("expected error for unknown task")
	}
	pending, _ := state.Pending()
	if len(pending) != 0 {
		t.Error("invalid entry was queued")
	}
}
