package reportstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmorling/headcount/schema"
)

func TestReportStore_NoneBackend(t *testing.T) {
	store, err := NewReportStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginReportRun should return 0 for NoneBackend
	runID, err := store.BeginReportRun(time.Now(), time.Now(), 10, map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other write operations should not error
	err = store.EndReportRun(1, time.Now(), 4, nil, schema.RunCompleted)
	assert.NoError(t, err)

	err = store.InsertReportCells([]schema.ReportCellRecord{{RunID: 1, RowName: "course_1"}})
	assert.NoError(t, err)

	// Reads should come back empty
	runs, err := store.GetReportRuns(0)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	err = store.Close()
	assert.NoError(t, err)
}

func TestReportStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginReportRun
	startTime := time.Now()
	referenceDate := time.Date(2013, 1, 17, 0, 0, 0, 0, time.UTC)
	configParams := map[string]any{
		"reference_date": "2013-01-17",
		"weeks":          3,
		"events":         "enrollments.tsv",
	}
	runID, err := store.BeginReportRun(startTime, referenceDate, 3, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Test InsertReportCells
	value := int64(50)
	cells := []schema.ReportCellRecord{
		{RunID: runID, RowName: "course_1", WeekDate: referenceDate, Value: &value},
		{RunID: runID, RowName: "course_2", WeekDate: referenceDate, Value: nil},
	}
	err = store.InsertReportCells(cells)
	assert.NoError(t, err)

	// Test EndReportRun
	finalTotal := int64(50)
	err = store.EndReportRun(runID, time.Now(), 3, &finalTotal, schema.RunCompleted)
	assert.NoError(t, err)

	// Verify the run record round-trips
	runs, err := store.GetReportRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, referenceDate, run.ReferenceDate)
	assert.Equal(t, int32(3), run.Weeks)
	assert.Equal(t, int32(3), run.SeriesCount)
	assert.Equal(t, schema.RunCompleted, run.Status)
	require.NotNil(t, run.FinalTotal)
	assert.Equal(t, int64(50), *run.FinalTotal)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int32(0))
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"weeks":3`)

	// Verify the cells round-trip, NULL value included
	stored, err := store.GetReportCells(runID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "course_1", stored[0].RowName)
	require.NotNil(t, stored[0].Value)
	assert.Equal(t, int64(50), *stored[0].Value)
	assert.Equal(t, "course_2", stored[1].RowName)
	assert.Nil(t, stored[1].Value)
	assert.Equal(t, referenceDate, stored[0].WeekDate)
}

func TestReportStore_MatrixRoundTrip(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	weeks := []time.Time{
		time.Date(2013, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2013, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	matrix := schema.NewReportMatrix(weeks)
	row1 := matrix.EnsureRow("course_1")
	row1[0] = schema.KnownCell(30)
	row1[1] = schema.KnownCell(40)
	row2 := matrix.EnsureRow("course_2")
	row2[0] = schema.KnownCell(10)
	total := matrix.EnsureRow(schema.TotalRowName)
	total[0] = schema.KnownCell(40)
	total[1] = schema.KnownCell(50)

	runID, err := store.BeginReportRun(time.Now(), weeks[1], 2, nil)
	require.NoError(t, err)

	err = store.InsertReportCells(matrix.FlattenCells(runID))
	require.NoError(t, err)

	stored, err := store.GetReportCells(runID)
	require.NoError(t, err)

	rebuilt := schema.MatrixFromCells(stored)
	assert.Equal(t, matrix.Weeks, rebuilt.Weeks)
	assert.Equal(t, matrix.RowNames(), rebuilt.RowNames())
	for _, name := range matrix.RowNames() {
		for col := range weeks {
			assert.Equal(t, matrix.CellAt(name, col), rebuilt.CellAt(name, col), "row %s col %d", name, col)
		}
	}
}

func TestReportStore_MultipleRuns(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	referenceDate := time.Date(2013, 2, 18, 0, 0, 0, 0, time.UTC)
	var lastID int64
	for i := 0; i < 3; i++ {
		runID, err := store.BeginReportRun(time.Now(), referenceDate, 2, nil)
		require.NoError(t, err)
		assert.Greater(t, runID, lastID)
		lastID = runID
	}

	// Newest first
	runs, err := store.GetReportRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, lastID, runs[0].RunID)

	// Limit caps the result set
	runs, err = store.GetReportRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, lastID, runs[0].RunID)

	// Latest run ID matches the newest run
	latest, err := store.GetLatestRunID()
	require.NoError(t, err)
	assert.Equal(t, lastID, latest)
}

func TestReportStore_GetLatestRunIDEmpty(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.GetLatestRunID()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no archived report runs found")
}

func TestReportStore_GetStatus(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty archive
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	// One completed run with cells
	referenceDate := time.Date(2013, 4, 2, 0, 0, 0, 0, time.UTC)
	runID, err := store.BeginReportRun(time.Now(), referenceDate, 1, nil)
	require.NoError(t, err)
	value := int64(2)
	err = store.InsertReportCells([]schema.ReportCellRecord{
		{RunID: runID, RowName: "course_☃", WeekDate: referenceDate, Value: &value},
	})
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, 1, status.TotalCells)
	assert.Equal(t, int64(1), status.TableSizes[reportRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[reportCellsTable])
	assert.False(t, status.LastRunTime.IsZero())
	assert.False(t, status.OldestRunTime.IsZero())
}

func TestReportStore_UnsupportedBackend(t *testing.T) {
	_, err := NewReportStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

// TestQuoteTableName tests the quoteTableName function for all backends.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name     string
		backend  schema.DatabaseBackend
		expected string
	}{
		{"sqlite", schema.SQLiteBackend, `"headcount_report_runs"`},
		{"mysql", schema.MySQLBackend, "`headcount_report_runs`"},
		{"postgres", schema.PostgreSQLBackend, `"headcount_report_runs"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, quoteTableName(reportRunsTable, tc.backend))
		})
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2013, 1, 17, 12, 30, 0, 0, time.UTC)

	// SQLite stores times as RFC3339 strings
	formatted := formatTime(ts, schema.SQLiteBackend)
	assert.Equal(t, "2013-01-17T12:30:00Z", formatted)

	// Other backends pass the time through unchanged
	assert.Equal(t, ts, formatTime(ts, schema.MySQLBackend))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}
