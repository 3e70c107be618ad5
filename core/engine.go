package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/tmorling/headcount/schema"
)

// Accumulate turns raw change records into a cumulative weekly matrix over
// the given week endings. Each record lands in the bucket of the first
// week ending on or after its date, bucket sums become running totals per
// entity, and totals carry forward through weeks with no activity.
//
// A cell stays no-data in exactly two situations: the entity has not
// produced any in-window record yet (its count is genuinely unknown, not
// zero), or the week ending lies past the newest date observed anywhere
// in the input (no stream can vouch for that week yet). Records newer
// than the last week ending are excluded from every sum but still extend
// the observed range.
func Accumulate(records []schema.DeltaRecord, endings []time.Time) (*schema.ReportMatrix, error) {
	if len(endings) == 0 {
		return nil, fmt.Errorf("%w: no week endings to report over", schema.ErrConfiguration)
	}

	// --- 1. Bucket Phase ---
	sums := make(map[string][]int64)
	touched := make(map[string][]bool)
	var maxDate time.Time

	for _, rec := range records {
		if _, ok := sums[rec.EntityID]; !ok {
			sums[rec.EntityID] = make([]int64, len(endings))
			touched[rec.EntityID] = make([]bool, len(endings))
		}
		if rec.Date.After(maxDate) {
			maxDate = rec.Date
		}
		idx := bucketIndex(endings, rec.Date)
		if idx == len(endings) {
			continue // newer than the window, but still extends the observed range
		}
		sums[rec.EntityID][idx] += rec.Delta
		touched[rec.EntityID][idx] = true
	}

	// --- 2. Cumulative Phase ---
	m := schema.NewReportMatrix(endings)
	for entity, bucketSums := range sums {
		row := m.EnsureRow(entity)
		var running int64
		seen := false
		for i := range endings {
			if touched[entity][i] {
				seen = true
			}
			running += bucketSums[i]
			if seen && !endings[i].After(maxDate) {
				row[i] = schema.KnownCell(running)
			}
		}
	}

	return m, nil
}

// bucketIndex returns the index of the first week ending on or after date,
// or len(endings) when the date falls past the whole window. Everything up
// to and including the first ending shares the first bucket.
func bucketIndex(endings []time.Time, date time.Time) int {
	return sort.Search(len(endings), func(i int) bool {
		return !date.After(endings[i])
	})
}

// AppendTotalRow sums every entity row into the reserved total row. A
// total cell carries data only where at least one entity does, so the
// leading and trailing no-data spans of a fresh report survive the
// aggregation.
func AppendTotalRow(m *schema.ReportMatrix) {
	entities := m.EntityNames()
	totals := m.EnsureRow(schema.TotalRowName)
	for i := range m.Weeks {
		var sum int64
		seen := false
		for _, name := range entities {
			c := m.Rows[name][i]
			if c.Valid {
				sum += c.Value
				seen = true
			}
		}
		if seen {
			totals[i] = schema.KnownCell(sum)
		}
	}
}
