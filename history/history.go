// Package history persists solve-run records to SQLite. It is an
// optional sink: callers that never construct a Store incur no I/O.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"sokosolve/board"
	"sokosolve/solver"
)

// Run is one completed solve, ready to persist or already loaded back.
type Run struct {
	ID             string
	LevelName      string
	StartedAt      time.Time
	EndedAt        time.Time
	Solved         bool
	StatesVisited  int
	PushesRequired int
	Pushes         []board.Push
}

// Store wraps a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

// Open creates the database file and its parent directory if needed, and
// ensures the runs table exists.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}

	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		level_name TEXT,
		started_at DATETIME,
		ended_at DATETIME,
		solved INTEGER,
		states_visited INTEGER,
		pushes_required INTEGER,
		pushes_json TEXT
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save records one run. The insert happens synchronously and any error is
// returned to the caller: a CLI solve has nothing else to block.
func (s *Store) Save(run Run) error {
	pushesJSON, err := json.Marshal(run.Pushes)
	if err != nil {
		return fmt.Errorf("history: marshal pushes: %w", err)
	}

	const insertSQL = `
	INSERT INTO runs (id, level_name, started_at, ended_at, solved, states_visited, pushes_required, pushes_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(insertSQL,
		run.ID,
		run.LevelName,
		run.StartedAt,
		run.EndedAt,
		run.Solved,
		run.StatesVisited,
		run.PushesRequired,
		string(pushesJSON),
	)
	if err != nil {
		return fmt.Errorf("history: insert run: %w", err)
	}
	return nil
}

// FromResult builds a Run ready to Save from a solver.Result and the
// bookkeeping a caller tracked around the Solve call.
func FromResult(id, levelName string, started, ended time.Time, res solver.Result, pushes []board.Push) Run {
	return Run{
		ID:             id,
		LevelName:      levelName,
		StartedAt:      started,
		EndedAt:        ended,
		Solved:         res.Solved,
		StatesVisited:  res.StatesVisited,
		PushesRequired: res.PushesRequired,
		Pushes:         pushes,
	}
}

// Recent returns the n most recently started runs, newest first.
func (s *Store) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, level_name, started_at, ended_at, solved, states_visited, pushes_required, pushes_json
		FROM runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var pushesJSON string
		if err := rows.Scan(&r.ID, &r.LevelName, &r.StartedAt, &r.EndedAt, &r.Solved, &r.StatesVisited, &r.PushesRequired, &pushesJSON); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(pushesJSON), &r.Pushes); err != nil {
			return nil, fmt.Errorf("history: unmarshal pushes: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
