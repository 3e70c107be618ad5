package core

import (
	"sort"
	"time"

	"github.com/tmorling/headcount/schema"
)

// MergeHistory overlays a fresh report onto an optional historical matrix.
// The result covers the union of rows and week columns in ascending date
// order. Wherever both matrices carry data for the same cell the fresh
// value wins; a fresh no-data cell never erases a historical value. The
// total row merges like any other row, so a history produced by an
// earlier run keeps its own totals for weeks the fresh report does not
// cover.
func MergeHistory(fresh, history *schema.ReportMatrix) *schema.ReportMatrix {
	if history == nil {
		return fresh
	}

	merged := schema.NewReportMatrix(unionWeeks(fresh.Weeks, history.Weeks))
	freshCols := columnIndex(fresh.Weeks)
	historyCols := columnIndex(history.Weeks)

	for name := range history.Rows {
		merged.EnsureRow(name)
	}
	for name := range fresh.Rows {
		merged.EnsureRow(name)
	}

	for name, row := range merged.Rows {
		for i, week := range merged.Weeks {
			key := schema.FormatDate(week)
			if col, ok := freshCols[key]; ok {
				if c := fresh.CellAt(name, col); c.Valid {
					row[i] = c
					continue
				}
			}
			if col, ok := historyCols[key]; ok {
				row[i] = history.CellAt(name, col)
			}
		}
	}

	return merged
}

// unionWeeks merges two week axes into one ascending, duplicate-free axis.
func unionWeeks(a, b []time.Time) []time.Time {
	seen := make(map[string]time.Time, len(a)+len(b))
	for _, d := range a {
		seen[schema.FormatDate(d)] = d
	}
	for _, d := range b {
		seen[schema.FormatDate(d)] = d
	}
	union := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		union = append(union, d)
	}
	sort.Slice(union, func(i, j int) bool { return union[i].Before(union[j]) })
	return union
}

// columnIndex maps formatted week dates to their column positions.
func columnIndex(weeks []time.Time) map[string]int {
	idx := make(map[string]int, len(weeks))
	for i, d := range weeks {
		idx[schema.FormatDate(d)] = i
	}
	return idx
}
