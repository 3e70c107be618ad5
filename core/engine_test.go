package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmorling/headcount/schema"
)

// rec builds one change record for engine tests.
func rec(t *testing.T, entityID, date string, delta int64) schema.DeltaRecord {
	t.Helper()
	d, err := schema.ParseDate(date)
	require.NoError(t, err)
	return schema.DeltaRecord{EntityID: entityID, Date: d, Delta: delta}
}

// runReport accumulates records over a window and appends the total row.
func runReport(t *testing.T, records []schema.DeltaRecord, reference string, weeks int) *schema.ReportMatrix {
	t.Helper()
	ref, err := schema.ParseDate(reference)
	require.NoError(t, err)
	endings, err := WeekEndings(ref, weeks)
	require.NoError(t, err)
	m, err := Accumulate(records, endings)
	require.NoError(t, err)
	AppendTotalRow(m)
	return m
}

// assertRow checks one matrix row cell by cell. A nil expectation means
// the cell must be no-data.
func assertRow(t *testing.T, m *schema.ReportMatrix, name string, expected []any) {
	t.Helper()
	require.True(t, m.HasRow(name), "missing row %s", name)
	require.Len(t, expected, len(m.Weeks))
	for i, want := range expected {
		got := m.CellAt(name, i)
		if want == nil {
			assert.False(t, got.Valid, "row %s col %d should be no-data, got %d", name, i, got.Value)
		} else {
			assert.Equal(t, schema.KnownCell(int64(want.(int))), got, "row %s col %d", name, i)
		}
	}
}

func TestAccumulateBasic(t *testing.T) {
	records := []schema.DeltaRecord{
		rec(t, "course_1", "2013-01-01", 10),
		rec(t, "course_1", "2013-01-02", 10),
		rec(t, "course_1", "2013-01-03", 10),
		rec(t, "course_1", "2013-01-09", 10),
		rec(t, "course_1", "2013-01-17", 10),
		rec(t, "course_2", "2013-01-01", 10),
		rec(t, "course_3", "2013-01-01", 10),
	}

	m := runReport(t, records, "2013-01-17", 3)

	assert.Equal(t, []string{"2013-01-03", "2013-01-10", "2013-01-17"}, schema.FormatDates(m.Weeks))
	assertRow(t, m, "course_1", []any{30, 40, 50})
	assertRow(t, m, "course_2", []any{10, 10, 10})
	assertRow(t, m, "course_3", []any{10, 10, 10})
	assertRow(t, m, schema.TotalRowName, []any{50, 60, 70})
}

func TestAccumulateWeekGrouping(t *testing.T) {
	// The first week has no data at all and the last week ending lies past
	// the newest record, so both boundary columns stay no-data
	records := []schema.DeltaRecord{
		rec(t, "course_1", "2013-01-06", 10),
		rec(t, "course_1", "2013-01-14", 10),
	}

	m := runReport(t, records, "2013-01-21", 4)

	assert.Equal(t, []string{"2012-12-31", "2013-01-07", "2013-01-14", "2013-01-21"}, schema.FormatDates(m.Weeks))
	assertRow(t, m, "course_1", []any{nil, 10, 20, nil})
	assertRow(t, m, schema.TotalRowName, []any{nil, 10, 20, nil})
}

func TestAccumulateNegativeDeltas(t *testing.T) {
	records := []schema.DeltaRecord{
		rec(t, "course_1", "2013-02-01", 4),
		rec(t, "course_1", "2013-02-04", 4),
		rec(t, "course_1", "2013-02-08", 5),
		rec(t, "course_1", "2013-02-12", -4),
		rec(t, "course_1", "2013-02-16", 6),
		rec(t, "course_1", "2013-02-18", 6),
		rec(t, "course_2", "2013-02-12", 2),
		rec(t, "course_2", "2013-02-14", 3),
		rec(t, "course_2", "2013-02-15", -2),
	}

	m := runReport(t, records, "2013-02-18", 2)

	assertRow(t, m, "course_1", []any{13, 21})
	assertRow(t, m, "course_2", []any{nil, 3})
	assertRow(t, m, schema.TotalRowName, []any{13, 24})
}

func TestAccumulateWithOffsets(t *testing.T) {
	// Offsets are ordinary records from a second stream; course_1 also has
	// a record past the window that extends the observed range without
	// entering any sum
	records := []schema.DeltaRecord{
		rec(t, "course_1", "2013-03-01", 1),
		rec(t, "course_1", "2013-03-30", 2),
		rec(t, "course_2", "2013-03-07", 1),
		rec(t, "course_2", "2013-03-08", 1),
		rec(t, "course_2", "2013-03-10", 1),
		rec(t, "course_2", "2013-03-13", 1),
		rec(t, "course_3", "2013-03-15", 1),
		rec(t, "course_3", "2013-03-18", 1),
		rec(t, "course_3", "2013-03-19", 1),
		// offsets
		rec(t, "course_2", "2013-03-07", 8),
		rec(t, "course_3", "2013-03-15", 6),
	}

	m := runReport(t, records, "2013-03-28", 4)

	assertRow(t, m, "course_1", []any{1, 1, 1, 1})
	assertRow(t, m, "course_2", []any{9, 12, 12, 12})
	assertRow(t, m, "course_3", []any{nil, nil, 9, 9})
	assertRow(t, m, schema.TotalRowName, []any{10, 13, 22, 22})
}

func TestAccumulateUnicodeEntity(t *testing.T) {
	records := []schema.DeltaRecord{
		rec(t, "course_☃", "2013-04-01", 1),
		rec(t, "course_☃", "2013-04-02", 1),
	}

	m := runReport(t, records, "2013-04-02", 1)

	assertRow(t, m, "course_☃", []any{2})
	assertRow(t, m, schema.TotalRowName, []any{2})
}

func TestAccumulateBeyondWindowOnly(t *testing.T) {
	// An entity whose records all land past the window still gets a row,
	// with every cell no-data
	records := []schema.DeltaRecord{
		rec(t, "course_1", "2013-01-05", 3),
		rec(t, "course_late", "2013-02-01", 7),
	}

	m := runReport(t, records, "2013-01-10", 2)

	assertRow(t, m, "course_1", []any{nil, 3})
	assertRow(t, m, "course_late", []any{nil, nil})
	assertRow(t, m, schema.TotalRowName, []any{nil, 3})
}

func TestAccumulateEmptyInput(t *testing.T) {
	ref, err := schema.ParseDate("2013-01-17")
	require.NoError(t, err)
	endings, err := WeekEndings(ref, 3)
	require.NoError(t, err)

	m, err := Accumulate(nil, endings)
	require.NoError(t, err)
	assert.Empty(t, m.Rows)

	// The total row over no entities is pure no-data
	AppendTotalRow(m)
	assertRow(t, m, schema.TotalRowName, []any{nil, nil, nil})
}

func TestAccumulateNoEndings(t *testing.T) {
	_, err := Accumulate(nil, nil)
	assert.ErrorIs(t, err, schema.ErrConfiguration)
}

func TestBucketIndex(t *testing.T) {
	endings := []time.Time{
		time.Date(2013, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2013, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2013, 1, 17, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		date     string
		expected int
	}{
		{"far before the window", "2012-06-01", 0},
		{"on the first ending", "2013-01-03", 0},
		{"just after the first ending", "2013-01-04", 1},
		{"on a middle ending", "2013-01-10", 1},
		{"inside the last bucket", "2013-01-12", 2},
		{"on the last ending", "2013-01-17", 2},
		{"past the window", "2013-01-18", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := schema.ParseDate(tc.date)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, bucketIndex(endings, d))
		})
	}
}

func TestAppendTotalRowMixedValidity(t *testing.T) {
	// One entity valid, one no-data in the same column: the total sums
	// what is there instead of going no-data
	records := []schema.DeltaRecord{
		rec(t, "course_1", "2013-01-01", 5),
		rec(t, "course_2", "2013-01-10", 2),
	}

	m := runReport(t, records, "2013-01-10", 2)

	assertRow(t, m, "course_1", []any{5, 5})
	assertRow(t, m, "course_2", []any{nil, 2})
	assertRow(t, m, schema.TotalRowName, []any{5, 7})
}
