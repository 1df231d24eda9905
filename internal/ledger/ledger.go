// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/docquery/internal/ingest"
)

// Ledger records ingestion runs and their per-file outcomes in SQLite.
type Ledger struct {
	db *sql.DB
}

// Run is a persisted ingestion run.
type Run struct {
	ID       string              `json:"id"`
	Folder   string              `json:"folder"`
	Started  time.Time           `json:"started"`
	Finished time.Time           `json:"finished"`
	Files    []ingest.FileResult `json:"files"`
}

// Open opens (and initializes) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		folder TEXT NOT NULL,
		started DATETIME NOT NULL,
		finished DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_files (
		run_id TEXT NOT NULL,
		file TEXT NOT NULL,
		records INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// RecordRun persists a report. Implements ingest.RunRecorder.
func (l *Ledger) RecordRun(ctx context.Context, report *ingest.Report) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	runID := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, folder, started, finished) VALUES (?, ?, ?, ?)",
		runID, report.Folder, report.Started, report.Finished); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, f := range report.Files {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_files (run_id, file, records, error) VALUES (?, ?, ?, ?)",
			runID, f.File, f.Records, f.Err); err != nil {
			return fmt.Errorf("failed to insert run file: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (l *Ledger) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.QueryContext(ctx,
		"SELECT id, folder, started, finished FROM runs ORDER BY started DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Folder, &run.Started, &run.Finished); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		files, err := l.runFiles(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

func (l *Ledger) runFiles(ctx context.Context, runID string) ([]ingest.FileResult, error) {
	rows, err := l.db.QueryContext(ctx,
		"SELECT file, records, error FROM run_files WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run files: %w", err)
	}
	defer rows.Close()

	var files []ingest.FileResult
	for rows.Next() {
		var f ingest.FileResult
		if err := rows.Scan(&f.File, &f.Records, &f.Err); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
