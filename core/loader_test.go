package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// writeInput drops an input file into a temp dir and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInputsEventsOnly(t *testing.T) {
	dir := t.TempDir()
	events := writeInput(t, dir, "events.tsv",
		"course_1\t2013-01-01\t10\ncourse_2\t2013-01-02\t5\n")

	cfg := &contract.Config{EventsPath: events}
	data, err := LoadInputs(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, data.Events, 2)
	assert.Empty(t, data.Offsets)
	assert.Nil(t, data.History)
	assert.Equal(t, "course_1", data.Events[0].EntityID)
	assert.Equal(t, int64(10), data.Events[0].Delta)
}

func TestLoadInputsAllStreams(t *testing.T) {
	dir := t.TempDir()
	events := writeInput(t, dir, "events.tsv",
		"course_1\t2013-03-01\t4\ncourse_1\t2013-03-20\t1\n")
	offsets := writeInput(t, dir, "offsets.tsv",
		"course_2\t2013-03-07\t8\n")
	history := writeInput(t, dir, "history.csv",
		"name,2013-02-28\ncourse_1,7\nTotal Enrollment,7\n")

	cfg := &contract.Config{
		EventsPath:  events,
		OffsetsPath: offsets,
		HistoryPath: history,
	}
	data, err := LoadInputs(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, data.Events, 2)
	assert.Len(t, data.Offsets, 1)
	require.NotNil(t, data.History)
	assert.Len(t, data.History.Weeks, 1)
	assert.Len(t, data.History.Rows, 2)
}

func TestAllRecordsOrder(t *testing.T) {
	data := &InputData{
		Events:  []schema.DeltaRecord{rec(t, "course_1", "2013-01-01", 1)},
		Offsets: []schema.DeltaRecord{rec(t, "course_2", "2013-01-02", 2)},
	}

	all := data.AllRecords()
	require.Len(t, all, 2)
	// Events come first, then offsets.
	assert.Equal(t, "course_1", all[0].EntityID)
	assert.Equal(t, "course_2", all[1].EntityID)
}

func TestLoadInputsMissingEvents(t *testing.T) {
	cfg := &contract.Config{EventsPath: filepath.Join(t.TempDir(), "absent.tsv")}
	_, err := LoadInputs(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening events file")
}

func TestLoadInputsMissingOffsets(t *testing.T) {
	dir := t.TempDir()
	events := writeInput(t, dir, "events.tsv", "course_1\t2013-01-01\t1\n")

	cfg := &contract.Config{
		EventsPath:  events,
		OffsetsPath: filepath.Join(dir, "absent.tsv"),
	}
	_, err := LoadInputs(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening offsets file")
}

func TestLoadInputsEventsParseError(t *testing.T) {
	dir := t.TempDir()
	events := writeInput(t, dir, "events.tsv", "course_1\tnot-a-date\t1\n")

	cfg := &contract.Config{EventsPath: events}
	_, err := LoadInputs(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrParse)
	assert.Contains(t, err.Error(), "events line 1")
}

func TestLoadInputsOffsetsParseError(t *testing.T) {
	dir := t.TempDir()
	events := writeInput(t, dir, "events.tsv", "course_1\t2013-01-01\t1\n")
	offsets := writeInput(t, dir, "offsets.tsv", "course_2\t2013-01-02\tnaN\n")

	cfg := &contract.Config{EventsPath: events, OffsetsPath: offsets}
	_, err := LoadInputs(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrParse)
	assert.Contains(t, err.Error(), "offsets line 1")
}

func TestLoadInputsHistoryParseError(t *testing.T) {
	dir := t.TempDir()
	events := writeInput(t, dir, "events.tsv", "course_1\t2013-01-01\t1\n")
	history := writeInput(t, dir, "history.csv", "name,garbage-date\ncourse_1,7\n")

	cfg := &contract.Config{EventsPath: events, HistoryPath: history}
	_, err := LoadInputs(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrParse)
	assert.Contains(t, err.Error(), "history:")
}

func TestLoadInputsCanceledContext(t *testing.T) {
	dir := t.TempDir()
	events := writeInput(t, dir, "events.tsv", "course_1\t2013-01-01\t1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &contract.Config{EventsPath: events}
	_, err := LoadInputs(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
