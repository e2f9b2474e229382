package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite persistence for generation runs and their artifacts.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new store with the given database path.
// Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT,
		status TEXT NOT NULL,
		mode TEXT,
		created_at DATETIME NOT NULL,
		active_types TEXT,
		group_count INTEGER DEFAULT 0,
		pool_size INTEGER DEFAULT 0,
		error_kind TEXT,
		error_message TEXT
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		size INTEGER NOT NULL,
		digest TEXT NOT NULL,
		content TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_run_id ON artifacts(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoredArtifact is an artifact with its content.
type StoredArtifact struct {
	ArtifactInfo
	Content string
}

// SaveRun stores a run and its artifacts in one transaction.
func (s *Store) SaveRun(run *Run, artifacts []StoredArtifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.CreatedAt == nil {
		now := time.Now().UTC()
		run.CreatedAt = &now
	}
	types, err := json.Marshal(run.ActiveTypes)
	if err != nil {
		return fmt.Errorf("failed to marshal active types: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, source, status, mode, created_at, active_types,
		                  group_count, pool_size, error_kind, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Status, run.Mode, *run.CreatedAt, string(types),
		run.Groups, run.PoolSize, run.ErrorKind, run.ErrorMessage)
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		_, err := tx.Exec(`
			INSERT INTO artifacts (run_id, name, kind, size, digest, content)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, a.Name, a.Kind, a.Size, a.Digest, a.Content)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

const runColumns = `id, source, status, mode, created_at, active_types,
		       group_count, pool_size, error_kind, error_message`

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var source, mode, types, errKind, errMsg sql.NullString
	var createdAt sql.NullTime

	if err := row.Scan(
		&run.ID, &source, &run.Status, &mode, &createdAt, &types,
		&run.Groups, &run.PoolSize, &errKind, &errMsg,
	); err != nil {
		return nil, err
	}

	run.Source = source.String
	run.Mode = mode.String
	run.ErrorKind = errKind.String
	run.ErrorMessage = errMsg.String
	if createdAt.Valid {
		run.CreatedAt = &createdAt.Time
	}
	if types.Valid && types.String != "" {
		if err := json.Unmarshal([]byte(types.String), &run.ActiveTypes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal active types: %w", err)
		}
	}
	return &run, nil
}

// GetRun retrieves a run by ID.
// Returns nil, nil if the run does not exist.
func (s *Store) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

// ListRuns retrieves runs, ordered by most recent first.
func (s *Store) ListRuns(limit, offset int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// CountRuns returns the total number of runs.
func (s *Store) CountRuns() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

// GetArtifacts retrieves the artifact descriptions of a run in write order.
func (s *Store) GetArtifacts(runID string) ([]ArtifactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT name, kind, size, digest FROM artifacts WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArtifactInfo
	for rows.Next() {
		var a ArtifactInfo
		if err := rows.Scan(&a.Name, &a.Kind, &a.Size, &a.Digest); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetArtifactContent retrieves the text of one artifact.
// Returns "", false, nil if the artifact does not exist.
func (s *Store) GetArtifactContent(runID, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var content string
	err := s.db.QueryRow(`
		SELECT content FROM artifacts WHERE run_id = ? AND name = ?
	`, runID, name).Scan(&content)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return content, true, nil
}

// DeleteRun deletes a run and its artifacts.
func (s *Store) DeleteRun(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
