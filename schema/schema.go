// Package schema has constants, models and shared helpers for all parts of headcount.
package schema

import "time"

// DeltaRecord is a single parsed change event: a signed enrollment delta
// for one entity on one calendar date. Offset files produce the same record
// type as event files and the two are indistinguishable downstream.
type DeltaRecord struct {
	EntityID string    // Opaque UTF-8 entity identifier, e.g. a course id
	Date     time.Time // Calendar date of the change, normalized to UTC midnight
	Delta    int64     // Signed change in enrollment count
}

// Cell is one value in a report matrix. Valid is false when nothing was
// ever observed for the row at that point, which is distinct from an
// observed count of zero.
type Cell struct {
	Value int64 `json:"value"`
	Valid bool  `json:"valid"`
}

// KnownCell returns a cell carrying an observed value.
func KnownCell(v int64) Cell {
	return Cell{Value: v, Valid: true}
}

// FormatCell renders a cell for CSV and table output. No-data cells render
// as the no-data marker, never as zero.
func FormatCell(c Cell) string {
	if !c.Valid {
		return NoDataMarker
	}
	return formatInt(c.Value)
}
