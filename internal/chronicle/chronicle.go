// Package chronicle provides the SQLite telemetry journal: every run gets a
// row, and the events the simulation emits are appended under it. The
// journal observes the world; it never feeds state back into it.
package chronicle

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jmercer/vale/internal/sim"
)

// DB wraps a SQLite connection for the journal.
type DB struct {
	conn *sqlx.DB
}

// Run is one recorded simulation run.
type Run struct {
	ID        string `db:"id"`
	Seed      int64  `db:"seed"`
	StartedAt string `db:"started_at"`
	Events    int    `db:"event_count"`
}

// Open opens or creates the journal database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(run_id, tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun registers a new run and returns its ID.
func (db *DB) BeginRun(seed int64) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)",
		id, seed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// SaveEvents appends a batch of events under a run.
func (db *DB) SaveEvents(runID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, tick, category, description) VALUES (?, ?, ?, ?)",
			runID, e.Tick, e.Category, e.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N events of a run, newest first.
func (db *DB) RecentEvents(runID string, limit int) ([]sim.Event, error) {
	var events []sim.Event
	err := db.conn.Select(&events,
		"SELECT tick, category, description FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}

// Runs lists recorded runs, newest first, with their event counts.
func (db *DB) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, `
		SELECT r.id, r.seed, r.started_at, COUNT(e.id) AS event_count
		FROM runs r LEFT JOIN events e ON e.run_id = r.id
		GROUP BY r.id ORDER BY r.started_at DESC LIMIT ?`,
		limit,
	)
	return runs, err
}

// Journal adapts the database to the simulation's event recorder. Write
// failures are logged and swallowed so the journal can never stall a tick.
type Journal struct {
	DB    *DB
	RunID string
}

// NewJournal registers a run and returns the recorder for it.
func NewJournal(db *DB, seed int64) (*Journal, error) {
	runID, err := db.BeginRun(seed)
	if err != nil {
		return nil, err
	}
	return &Journal{DB: db, RunID: runID}, nil
}

// Record persists one tick's event batch.
func (j *Journal) Record(events []sim.Event) {
	if err := j.DB.SaveEvents(j.RunID, events); err != nil {
		slog.Error("journal write failed", "run", j.RunID, "error", err)
	}
}
