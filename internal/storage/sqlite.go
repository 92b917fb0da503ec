// Package storage persists a ledger of past prediction results using SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/exodash/exodash/internal/exoplanet"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// HistoryEntry is one scored target in the prediction ledger.
type HistoryEntry struct {
	CreatedAt  time.Time
	Target     string
	Author     string
	Mission    exoplanet.Mission
	Decision   exoplanet.Decision
	Source     string // "backend" or "mock"
	ID         int64
	ProbPlanet float64
	Threshold  float64
}

// SQLiteStorage implements the prediction history ledger on SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (and if needed creates) the history database.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS predictions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			target TEXT NOT NULL,
			mission TEXT NOT NULL,
			author TEXT,
			prob_planet REAL NOT NULL,
			threshold REAL NOT NULL,
			decision TEXT NOT NULL,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_predictions_target ON predictions(target);
		CREATE INDEX IF NOT EXISTS idx_predictions_created ON predictions(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SavePrediction appends a scored result to the ledger and returns its id.
func (s *SQLiteStorage) SavePrediction(ctx context.Context, entry HistoryEntry) (int64, error) {
	if entry.Target == "" {
		return 0, exoplanet.ErrEmptyTarget
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions (target, mission, author, prob_planet, threshold, decision, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Target, string(entry.Mission), entry.Author,
		entry.ProbPlanet, entry.Threshold, string(entry.Decision), entry.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save prediction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// ListRecent returns the most recent entries, newest first.
func (s *SQLiteStorage) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, target, mission, author, prob_planet, threshold, decision, source, created_at
		FROM predictions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var mission, decision string
		if err := rows.Scan(&e.ID, &e.Target, &mission, &e.Author,
			&e.ProbPlanet, &e.Threshold, &decision, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		e.Mission = exoplanet.Mission(mission)
		e.Decision = exoplanet.Decision(decision)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}
	return entries, nil
}

// ListByTarget returns all entries for one target, newest first.
func (s *SQLiteStorage) ListByTarget(ctx context.Context, target string) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, target, mission, author, prob_planet, threshold, decision, source, created_at
		FROM predictions
		WHERE target = ?
		ORDER BY created_at DESC, id DESC`, target)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions for %s: %w", target, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var mission, decision string
		if err := rows.Scan(&e.ID, &e.Target, &mission, &e.Author,
			&e.ProbPlanet, &e.Threshold, &decision, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		e.Mission = exoplanet.Mission(mission)
		e.Decision = exoplanet.Decision(decision)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}
	return entries, nil
}
