package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() }) //nolint:errcheck
	require.NoError(t, j.Migrate(context.Background()))
	return j
}

func TestNewSQLite_InvalidPath(t *testing.T) {
	_, err := NewSQLite("/nonexistent/dir/subdir/journal.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	j := newTestSQLite(t)
	require.NoError(t, j.Migrate(context.Background()))
}

func TestSQLite_RecordAndList(t *testing.T) {
	ctx := context.Background()
	j := newTestSQLite(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.Record(ctx, Entry{
		Tool:      "distance_calculator",
		Arguments: map[string]string{"address1": "Rexburg, ID", "address2": "Idaho Falls, ID"},
		Result:    "25.93 miles",
		Duration:  120 * time.Millisecond,
		CreatedAt: base,
	}))
	require.NoError(t, j.Record(ctx, Entry{
		Tool:      "population_data",
		Arguments: map[string]string{"arguments": "Austin, TX"},
		Result:    "Population of Austin, TX: 961,855 (recent)",
		CreatedAt: base.Add(time.Minute),
	}))

	all, err := j.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "population_data", all[0].Tool, "newest first")
	assert.Equal(t, "distance_calculator", all[1].Tool)
	assert.NotEmpty(t, all[1].ID)
	assert.Equal(t, "Idaho Falls, ID", all[1].Arguments["address2"])
	assert.Equal(t, 120*time.Millisecond, all[1].Duration)
	assert.True(t, base.Equal(all[1].CreatedAt))

	filtered, err := j.List(ctx, Filter{Tool: "distance_calculator"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "25.93 miles", filtered[0].Result)

	limited, err := j.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_RecordKeepsExplicitID(t *testing.T) {
	ctx := context.Background()
	j := newTestSQLite(t)

	require.NoError(t, j.Record(ctx, Entry{ID: "fixed-id", Tool: "population_data", Result: "x"}))
	err := j.Record(ctx, Entry{ID: "fixed-id", Tool: "population_data", Result: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: insert journal entry fixed-id")

	entries, err := j.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Arguments)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported driver "mysql"`)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	j, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	defer j.Close() //nolint:errcheck

	require.NoError(t, j.Record(ctx, Entry{Tool: "competitor_verifier", Result: "Valid"}))
	entries, err := j.List(ctx, Filter{Tool: "competitor_verifier"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
