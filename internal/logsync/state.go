// Package logsync queues fitness log entries offline in SQLite and replays
// them against the server's sync endpoint.
package logsync

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one queued log line. Kind selects the payload: water and sleep
// carry Amount, task carries Task.
type Entry struct {
	ID       int64
	Kind     string // water | sleep | task
	Amount   float64
	Task     string
	Date     string // YYYY-MM-DD
	LoggedAt time.Time
	Synced   bool
}

// StateDB is the SQLite queue of logged entries, tracking which have been
// replayed so a re-run never re-sends.
type StateDB struct {
	db *sql.DB
}

// DefaultStateDir returns the per-user queue location.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitmyself-log"
	}
	return filepath.Join(home, ".fitmyself-log")
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS log_entries (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		kind      TEXT NOT NULL,
		amount    REAL NOT NULL DEFAULT 0,
		task      TEXT NOT NULL DEFAULT '',
		date      TEXT NOT NULL,
		logged_at TIMESTAMP NOT NULL,
		synced    INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// Enqueue appends an entry to the queue. LoggedAt defaults to now.
func (s *StateDB) Enqueue(e Entry) error {
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO log_entries (kind, amount, task, date, logged_at) VALUES (?, ?, ?, ?, ?)`,
		e.Kind, e.Amount, e.Task, e.Date, e.LoggedAt,
	)
	return err
}

// Pending returns unsynced entries, oldest first.
func (s *StateDB) Pending() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, kind, amount, task, date, logged_at
		 FROM log_entries WHERE synced = 0 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Amount, &e.Task, &e.Date, &e.LoggedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkSynced flags the given entries as replayed.
func (s *StateDB) MarkSynced(ids []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.Exec(`UPDATE log_entries SET synced = 1 WHERE id = ?`, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
