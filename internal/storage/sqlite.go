// Package storage provides SQLite-based persistence for campaign runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only finished or abandoned runs are stored; live sessions stay in memory.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/bash-bonanza/internal/config"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded playthrough of a campaign.
type Run struct {
	ID              string
	CampaignID      string
	Player          string
	Score           int
	LevelsCompleted int
	Finished        bool // the last level was completed
	CreatedAt       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

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
			id TEXT PRIMARY KEY,
			campaign_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			levels_completed INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_campaign_id ON runs(campaign_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(campaign_id, score DESC);
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

// SaveRun records a run. A random ID is assigned when run.ID is empty.
// Returns the ID of the stored record.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, campaign_id, player, score, levels_completed, finished)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.CampaignID, run.Player, run.Score, run.LevelsCompleted, run.Finished,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

// TopRuns retrieves the top N runs for the given campaign.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(campaignID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, campaign_id, player, score, levels_completed, finished, created_at
		 FROM runs
		 WHERE campaign_id = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		campaignID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.Player, &r.Score, &r.LevelsCompleted, &r.Finished, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score for the given campaign.
// Returns 0 if no runs exist.
func (s *Store) HighScore(campaignID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE campaign_id = ?",
		campaignID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given campaign.
func (s *Store) ClearRuns(campaignID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE campaign_id = ?", campaignID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// CampaignStats contains aggregated statistics for a campaign.
type CampaignStats struct {
	CampaignID    string
	RunsCount     int
	FinishedCount int
	HighScore     int
	AvgScore      float64
	LastPlayed    time.Time
}

// GetCampaignStats retrieves aggregated statistics for a campaign.
func (s *Store) GetCampaignStats(campaignID string) (*CampaignStats, error) {
	stats := &CampaignStats{CampaignID: campaignID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(finished), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM runs WHERE campaign_id = ?`,
		campaignID,
	).Scan(&stats.RunsCount, &stats.FinishedCount, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get campaign stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE campaign_id = ? ORDER BY created_at DESC LIMIT 1`,
		campaignID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// parseTimestamp handles both time.Time and string datetimes from SQLite.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
