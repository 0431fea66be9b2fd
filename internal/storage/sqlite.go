// Package storage provides SQLite-based persistence for sketch runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/hui-playground/internal/config"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished session of a sketch.
type Run struct {
	ID        int64
	SketchID  string
	Frames    int
	Seconds   float64
	AvgFPS    float64
	Faults    int
	Score     int
	Seed      int64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = config.ExpandHome(dbPath)

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sketch_id TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			seconds REAL NOT NULL DEFAULT 0,
			avg_fps REAL NOT NULL DEFAULT 0,
			faults INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_sketch_id ON runs(sketch_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(sketch_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.SketchID == "" {
		return 0, errors.New("storage: run has no sketch id")
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (sketch_id, frames, seconds, avg_fps, faults, score, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SketchID, r.Frames, r.Seconds, r.AvgFPS, r.Faults, r.Score, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, sketch_id, frames, seconds, avg_fps, faults, score, seed, created_at`

// TopRuns retrieves the best N runs of a sketch, highest score first.
// Ties go to the longer run.
func (s *Store) TopRuns(sketchID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE sketch_id = ?
		 ORDER BY score DESC, seconds DESC
		 LIMIT ?`,
		sketchID, limit,
	)
}

// RecentRuns retrieves the latest runs across all sketches, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SketchID, &r.Frames, &r.Seconds, &r.AvgFPS,
			&r.Faults, &r.Score, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestScore returns the highest score recorded for a sketch, or 0.
func (s *Store) BestScore(sketchID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE sketch_id = ?",
		sketchID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes the run history of a sketch.
func (s *Store) ClearRuns(sketchID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE sketch_id = ?", sketchID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SketchStats contains aggregated statistics for a sketch.
type SketchStats struct {
	SketchID     string
	Runs         int
	BestScore    int
	TotalSeconds float64
	AvgFPS       float64
	Faults       int
	LastPlayed   time.Time
}

// SketchStats retrieves aggregated statistics for a sketch. A sketch without
// runs yields zero stats.
func (s *Store) SketchStats(sketchID string) (*SketchStats, error) {
	stats := &SketchStats{SketchID: sketchID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(SUM(seconds), 0),
		        COALESCE(AVG(avg_fps), 0), COALESCE(SUM(faults), 0), MAX(created_at)
		 FROM runs WHERE sketch_id = ?`,
		sketchID,
	).Scan(&stats.Runs, &stats.BestScore, &stats.TotalSeconds, &stats.AvgFPS, &stats.Faults, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get sketch stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllSketchStats retrieves statistics for every sketch that has runs.
func (s *Store) AllSketchStats() (map[string]*SketchStats, error) {
	rows, err := s.db.Query(
		`SELECT sketch_id, COUNT(*), MAX(score), SUM(seconds), AVG(avg_fps), SUM(faults), MAX(created_at)
		 FROM runs
		 GROUP BY sketch_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all sketch stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SketchStats)
	for rows.Next() {
		var st SketchStats
		var lastPlayed any
		if err := rows.Scan(&st.SketchID, &st.Runs, &st.BestScore, &st.TotalSeconds,
			&st.AvgFPS, &st.Faults, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.SketchID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
