// Package db persists pipeline run history alongside the workbook.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const runLogSchema = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	rows_processed INTEGER NOT NULL,
	positive INTEGER NOT NULL,
	negative INTEGER NOT NULL,
	neutral INTEGER NOT NULL,
	errors INTEGER NOT NULL
);`

type RunRecord struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	RowsProcessed int
	Positive      int
	Negative      int
	Neutral       int
	Errors        int
}

// RunLog records one row per completed pipeline run. It shares the
// workbook's database handle.
type RunLog struct {
	db *sql.DB
}

func NewRunLog(db *sql.DB) (*RunLog, error) {
	if _, err := db.Exec(runLogSchema); err != nil {
		return nil, fmt.Errorf("init run log schema: %w", err)
	}
	return &RunLog{db: db}, nil
}

func (l *RunLog) RecordRun(ctx context.Context, rec RunRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO pipeline_runs
		 (id, started_at, finished_at, rows_processed, positive, negative, neutral, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.FinishedAt.UTC().Format(time.RFC3339),
		rec.RowsProcessed,
		rec.Positive,
		rec.Negative,
		rec.Neutral,
		rec.Errors,
	)
	if err != nil {
		return fmt.Errorf("record run %q: %w", rec.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, most recent first.
func (l *RunLog) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, rows_processed, positive, negative, neutral, errors
		 FROM pipeline_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished string
		if err := rows.Scan(&rec.ID, &started, &finished, &rec.RowsProcessed,
			&rec.Positive, &rec.Negative, &rec.Neutral, &rec.Errors); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parse run start time: %w", err)
		}
		if rec.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
			return nil, fmt.Errorf("parse run finish time: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
