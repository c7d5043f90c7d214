// Package history persists run metadata: an append-only JSON log compatible
// with the workflow_history.json format, plus an optional sqlite store for
// querying past runs.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/oscarrenalias/ai-research-content-generator/internal/config"
	"github.com/oscarrenalias/ai-research-content-generator/internal/model"
)

// Store writes run records to the JSON log and, when configured, to sqlite.
type Store struct {
	db       *sql.DB
	jsonPath string
}

// Open prepares the history store. An empty DB path disables sqlite; an empty
// File path disables the JSON log.
func Open(cfg config.HistoryConfig) (*Store, error) {
	s := &Store{jsonPath: cfg.File}
	if cfg.DB != "" {
		db, err := openDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		s.db = db
		if err := s.initSchema(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	return db, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			instructions TEXT NOT NULL,
			final_post TEXT NOT NULL,
			links_analyzed INTEGER NOT NULL DEFAULT 0,
			topics_researched INTEGER NOT NULL DEFAULT 0,
			post_length INTEGER NOT NULL DEFAULT 0
		)`)
	if err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Close releases the sqlite handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records one run in every configured backend. The first failure is
// returned but does not prevent the other backend from being written.
func (s *Store) Append(rec model.RunRecord) error {
	var firstErr error
	if s.jsonPath != "" {
		if err := s.appendJSON(rec); err != nil {
			firstErr = err
		}
	}
	if s.db != nil {
		if err := s.insert(rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Store) appendJSON(rec model.RunRecord) error {
	var records []model.RunRecord
	if raw, err := os.ReadFile(s.jsonPath); err == nil {
		// A corrupt log is abandoned rather than blocking the run.
		_ = json.Unmarshal(raw, &records)
	}
	records = append(records, rec)

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return os.WriteFile(s.jsonPath, out, 0o644)
}

func (s *Store) insert(rec model.RunRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (run_id, created_at, instructions, final_post, links_analyzed, topics_researched, post_length)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Timestamp.Format(time.RFC3339), rec.Instructions, rec.FinalPost,
		rec.LinksAnalyzed, rec.TopicsResearched, rec.PostLength)
	if err != nil {
		return fmt.Errorf("failed to insert run record: %w", err)
	}
	return nil
}

// Recent returns the latest n runs, newest first. Prefers sqlite; falls back
// to the JSON log when no database is configured.
func (s *Store) Recent(n int) ([]model.RunRecord, error) {
	if s.db != nil {
		return s.recentDB(n)
	}
	return s.recentJSON(n)
}

func (s *Store) recentDB(n int) ([]model.RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, created_at, instructions, final_post, links_analyzed, topics_researched, post_length
		FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []model.RunRecord
	for rows.Next() {
		var rec model.RunRecord
		var createdAt string
		if err := rows.Scan(&rec.RunID, &createdAt, &rec.Instructions, &rec.FinalPost,
			&rec.LinksAnalyzed, &rec.TopicsResearched, &rec.PostLength); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) recentJSON(n int) ([]model.RunRecord, error) {
	if s.jsonPath == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(s.jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []model.RunRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	var out []model.RunRecord
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out, nil
}
