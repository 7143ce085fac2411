// Package stats persists usage statistics: a capped activity log, the
// cumulative API cost, and the duplicates-found counter.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/DinN0000/dotbrain/internal/model"
)

// activityCap bounds the recent-activity log.
const activityCap = 100

// Activity action names.
const (
	ActionClassified   = "classified"
	ActionDeduplicated = "deduplicated"
	ActionMoved        = "moved"
)

// Store persists statistics in SQLite. A single connection serializes all
// read-modify-write cycles.
type Store struct {
	db *sql.DB
}

// NewStore opens (and creates if needed) the statistics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name TEXT NOT NULL,
			category TEXT NOT NULL,
			action TEXT NOT NULL,
			recorded_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_recorded_at ON activity(recorded_at)`,
		`CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value REAL NOT NULL DEFAULT 0
		)`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// RecordActivity appends an activity entry, trimming the log to the most
// recent entries.
func (s *Store) RecordActivity(ctx context.Context, fileName, category, action string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO activity (file_name, category, action, recorded_at) VALUES (?, ?, ?, ?)`,
		fileName, category, action, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM activity WHERE id NOT IN (SELECT id FROM activity ORDER BY id DESC LIMIT ?)`,
		activityCap); err != nil {
		return fmt.Errorf("failed to trim activity log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// AddAPICost adds cost to the cumulative API spend.
func (s *Store) AddAPICost(ctx context.Context, cost float64) error {
	return s.bumpCounter(ctx, "api_cost", cost)
}

// IncrementDuplicates increments the duplicates-found counter.
func (s *Store) IncrementDuplicates(ctx context.Context) error {
	return s.bumpCounter(ctx, "duplicates_found", 1)
}

func (s *Store) bumpCounter(ctx context.Context, name string, delta float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = value + excluded.value`,
		name, delta)
	if err != nil {
		return fmt.Errorf("failed to update counter %s: %w", name, err)
	}
	return nil
}

// RecentActivity returns the activity log, newest first.
func (s *Store) RecentActivity(ctx context.Context) ([]model.ActivityEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_name, category, action, recorded_at FROM activity ORDER BY id DESC LIMIT ?`,
		activityCap)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.ActivityEntry
	for rows.Next() {
		var entry model.ActivityEntry
		if err := rows.Scan(&entry.FileName, &entry.Category, &entry.Action, &entry.Date); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity rows: %w", err)
	}
	return entries, nil
}

func (s *Store) counter(ctx context.Context, name string) (float64, error) {
	var value float64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", name, err)
	}
	return value, nil
}

// APICost returns the cumulative API spend.
func (s *Store) APICost(ctx context.Context) (float64, error) {
	return s.counter(ctx, "api_cost")
}

// DuplicatesFound returns the duplicates-found counter.
func (s *Store) DuplicatesFound(ctx context.Context) (int, error) {
	value, err := s.counter(ctx, "duplicates_found")
	return int(value), err
}
