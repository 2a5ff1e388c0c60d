package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "runlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunLog_RecordAndList(t *testing.T) {
	runLog, err := NewRunLog(openTestDB(t))
	require.NoError(t, err)

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := RunRecord{
		ID:            "run-1",
		StartedAt:     base,
		FinishedAt:    base.Add(90 * time.Second),
		RowsProcessed: 40,
		Positive:      25,
		Negative:      10,
		Neutral:       4,
		Errors:        1,
	}
	second := RunRecord{
		ID:            "run-2",
		StartedAt:     base.Add(time.Hour),
		FinishedAt:    base.Add(time.Hour + time.Minute),
		RowsProcessed: 40,
		Positive:      26,
		Negative:      9,
		Neutral:       5,
	}

	require.NoError(t, runLog.RecordRun(ctx, first))
	require.NoError(t, runLog.RecordRun(ctx, second))

	records, err := runLog.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "run-2", records[0].ID, "most recent run first")

	got := records[1]
	assert.Equal(t, first.ID, got.ID)
	assert.True(t, got.StartedAt.Equal(first.StartedAt))
	assert.True(t, got.FinishedAt.Equal(first.FinishedAt))
	assert.Equal(t, first.RowsProcessed, got.RowsProcessed)
	assert.Equal(t, first.Positive, got.Positive)
	assert.Equal(t, first.Negative, got.Negative)
	assert.Equal(t, first.Neutral, got.Neutral)
	assert.Equal(t, first.Errors, got.Errors)

	limited, err := runLog.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "run-2", limited[0].ID)
}

func TestRunLog_DuplicateRunID(t *testing.T) {
	runLog, err := NewRunLog(openTestDB(t))
	require.NoError(t, err)

	rec := RunRecord{ID: "run-1", StartedAt: time.Now(), FinishedAt: time.Now()}
	require.NoError(t, runLog.RecordRun(context.Background(), rec))
	assert.Error(t, runLog.RecordRun(context.Background(), rec))
}
