package logsync

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/fitmyself/internal/models"
)

// Stats tracks one sync run.
type Stats struct {
	Queued  int
	Sent    int
	Applied int
	Skipped int
	Reward  int
	Server  models.UserStats
}

// Syncer replays the queued entries against the server in batches.
type Syncer struct {
	client    *Client
	state     *StateDB
	batchSize int
	log       *slog.Logger
}

// New creates a Syncer.
func New(client *Client, state *StateDB, batchSize int, log *slog.Logger) *Syncer {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Syncer{client: client, state: state, batchSize: batchSize, log: log}
}

// LogWater queues a water amount for the given date (empty means today).
func (s *Syncer) LogWater(liters float64, date string) error {
	return s.state.Enqueue(Entry{Kind: "water", Amount: liters, Date: orToday(date)})
}

// LogSleep queues logged sleep hours for the given date.
func (s *Syncer) LogSleep(hours float64, date string) error {
	return s.state.Enqueue(Entry{Kind: "sleep", Amount: hours, Date: orToday(date)})
}

// LogTask queues a task completion for the given date.
func (s *Syncer) LogTask(task models.TaskKind, date string) error {
	if !task.Valid() {
		return fmt.Errorf("unknown task %q", task)
	}
	return s.state.Enqueue(Entry{Kind: "task", Task: string(task), Date: orToday(date)})
}

// Run replays all pending entries, oldest first. Entries are marked synced
// only after the server accepts their batch, so an interrupted run resumes
// where it stopped.
func (s *Syncer) Run() (*Stats, error) {
	pending, err := s.state.Pending()
	if err != nil {
		return nil, fmt.Errorf("reading queue: %w", err)
	}

	stats := &Stats{Queued: len(pending)}
	if len(pending) == 0 {
		return stats, nil
	}

	for i := 0; i < len(pending); i += s.batchSize {
		end := i + s.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[i:end]

		result, err := s.client.SendBatch(batch)
		if err != nil {
			return stats, fmt.Errorf("sending batch: %w", err)
		}

		ids := make([]int64, 0, len(batch))
		for _, e := range batch {
			ids = append(ids, e.ID)
		}
		if err := s.state.MarkSynced(ids); err != nil {
			return stats, fmt.Errorf("marking synced: %w", err)
		}

		stats.Sent += len(batch)
		stats.Applied += result.Applied
		stats.Skipped += result.Skipped
		stats.Reward += result.Reward
		stats.Server = result.Stats

		s.log.Info("synced batch",
			"entries", len(batch),
			"applied", result.Applied,
			"skipped", result.Skipped,
			"reward", result.Reward,
		)
	}

	return stats, nil
}

func orToday(date string) string {
	if date == "" {
		return time.Now().Format("2006-01-02")
	}
	return date
}
