// Package history keeps a local record of past builds in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded build.
type Entry struct {
	ID          int64
	BuildID     string
	Status      string
	Profile     string
	Target      string
	Revision    string
	OutputPath  string
	Fingerprint string
	Changed     bool
	Generated   bool
	Error       string
	StartedAt   time.Time
	Duration    time.Duration
}

// Store records builds and lists recent ones.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Prune(ctx context.Context, keep int) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the history database at dbPath, creating
// parent directories. Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		status TEXT NOT NULL,
		profile TEXT NOT NULL DEFAULT '',
		target TEXT NOT NULL DEFAULT '',
		revision TEXT NOT NULL DEFAULT '',
		output_path TEXT NOT NULL DEFAULT '',
		fingerprint TEXT NOT NULL DEFAULT '',
		changed INTEGER NOT NULL DEFAULT 0,
		generated INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_build_id ON builds(build_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends a build entry.
func (s *SQLiteStore) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (build_id, status, profile, target, revision, output_path, fingerprint, changed, generated, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.BuildID, e.Status, e.Profile, e.Target, e.Revision, e.OutputPath, e.Fingerprint,
		e.Changed, e.Generated, e.Error, e.StartedAt.UnixMilli(), e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, build_id, status, profile, target, revision, output_path, fingerprint, changed, generated, error, started_at, duration_ms
		FROM builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedMS, durationMS int64
		if err := rows.Scan(&e.ID, &e.BuildID, &e.Status, &e.Profile, &e.Target, &e.Revision, &e.OutputPath,
			&e.Fingerprint, &e.Changed, &e.Generated, &e.Error, &startedMS, &durationMS); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		e.StartedAt = time.UnixMilli(startedMS)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}

// Prune deletes all but the newest keep entries and returns how many were
// removed. keep <= 0 removes nothing.
func (s *SQLiteStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM builds WHERE id NOT IN (SELECT id FROM builds ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune builds: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
