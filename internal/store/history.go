// Package store records walkthrough tours in a local SQLite database so the
// CLI can report past runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// SchemaVersion is stored in PRAGMA user_version.
const SchemaVersion = 1

// Run is one tour, from the first active emission to the next inactive one.
type Run struct {
	ID          int64
	StartedAt   time.Time
	EndedAt     time.Time // zero while the tour is running
	TotalSteps  int
	MaxStep     int
	Completed   bool // the last step was reached before the tour stopped
	Transitions int
}

// Open reports whether the run has not ended yet.
func (r Run) Open() bool {
	return r.EndedAt.IsZero()
}

// History is the tour history database.
type History struct {
	db    *sql.DB
	path  string
	runID int64 // 0 when no run is open
	now   func() time.Time
}

// Open opens or creates the history database at path. ":memory:" opens a
// private in-memory database.
func Open(path string) (*History, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open history database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	h := &History{db: db, path: path, now: time.Now}
	if err := h.closeDanglingRuns(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			total_steps INTEGER NOT NULL,
			max_step INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS transitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			step INTEGER NOT NULL,
			active INTEGER NOT NULL,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_run ON transitions(run_id)`,
		fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create history schema: %w", err)
		}
	}
	return nil
}

// closeDanglingRuns ends runs left open by a process that exited mid-tour.
func (h *History) closeDanglingRuns() error {
	_, err := h.db.Exec(`UPDATE runs SET ended_at = started_at WHERE ended_at IS NULL`)
	if err != nil {
		return fmt.Errorf("closing dangling runs: %w", err)
	}
	return nil
}

// Path returns the database path.
func (h *History) Path() string {
	return h.path
}

// Close closes the database.
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record stores one state emission. An active emission with no open run
// starts a run; an inactive emission ends the open run. Inactive emissions
// outside a run are ignored.
func (h *History) Record(st walkthrough.State) error {
	at := h.now().UTC().Format(time.RFC3339Nano)

	if h.runID == 0 {
		if !st.IsActive {
			return nil
		}
		res, err := h.db.Exec(`INSERT INTO runs (started_at, total_steps) VALUES (?, ?)`, at, st.TotalSteps)
		if err != nil {
			return fmt.Errorf("starting run: %w", err)
		}
		if h.runID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("starting run: %w", err)
		}
	}

	if _, err := h.db.Exec(`INSERT INTO transitions (run_id, step, active, at) VALUES (?, ?, ?, ?)`,
		h.runID, st.CurrentStep, boolInt(st.IsActive), at); err != nil {
		return fmt.Errorf("recording transition: %w", err)
	}

	if st.IsActive {
		_, err := h.db.Exec(`UPDATE runs SET max_step = MAX(max_step, ?),
			completed = CASE WHEN ? >= total_steps THEN 1 ELSE completed END WHERE id = ?`,
			st.CurrentStep, st.CurrentStep, h.runID)
		if err != nil {
			return fmt.Errorf("updating run: %w", err)
		}
		debug.LogIf(st.CurrentStep >= st.TotalSteps, "run %d reached the last step", h.runID)
		return nil
	}

	if _, err := h.db.Exec(`UPDATE runs SET ended_at = ? WHERE id = ?`, at, h.runID); err != nil {
		return fmt.Errorf("ending run: %w", err)
	}
	h.runID = 0
	return nil
}

// Recorder returns a walkthrough subscriber that records every emission.
// Errors are logged and otherwise ignored.
func (h *History) Recorder() func(walkthrough.State) {
	return func(st walkthrough.State) {
		if err := h.Record(st); err != nil {
			debug.Warn(err, "recording tour history")
		}
	}
}

// Attach subscribes the recorder to w and returns the unsubscribe function.
func (h *History) Attach(w *walkthrough.Walkthrough) func() {
	return w.Subscribe(h.Recorder())
}

const runColumns = `r.id, r.started_at, r.ended_at, r.total_steps, r.max_step, r.completed,
	(SELECT COUNT(*) FROM transitions t WHERE t.run_id = r.id)`

// LastRun returns the most recent run. ok is false when no run was recorded.
func (h *History) LastRun() (run Run, ok bool, err error) {
	row := h.db.QueryRow(`SELECT ` + runColumns + ` FROM runs r ORDER BY r.id DESC LIMIT 1`)
	run, err = scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("reading last run: %w", err)
	}
	return run, true, nil
}

// Runs returns up to limit runs, newest first. A non-positive limit returns
// all runs.
func (h *History) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.Query(`SELECT `+runColumns+` FROM runs r ORDER BY r.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("listing runs: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CompletedRuns counts finished runs that reached the last step.
func (h *History) CompletedRuns() (int, error) {
	var n int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE completed = 1 AND ended_at IS NOT NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting completed runs: %w", err)
	}
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run       Run
		startedAt string
		endedAt   sql.NullString
	)
	if err := s.Scan(&run.ID, &startedAt, &endedAt, &run.TotalSteps, &run.MaxStep, &run.Completed, &run.Transitions); err != nil {
		return Run{}, err
	}
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
	if endedAt.Valid {
		run.EndedAt, _ = time.Parse(time.RFC3339Nano, endedAt.String)
	}
	return run, nil
}
