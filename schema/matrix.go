package schema

import (
	"sort"
	"time"
)

// ReportMatrix is a grid of cumulative enrollment counts: one row per
// series name, one column per week-ending date. Every row holds exactly
// len(Weeks) cells. Week columns are kept in ascending date order.
type ReportMatrix struct {
	Weeks []time.Time       // Ascending week-ending dates, UTC midnight
	Rows  map[string][]Cell // Series name to one cell per week
}

// NewReportMatrix returns an empty matrix over the given week columns.
func NewReportMatrix(weeks []time.Time) *ReportMatrix {
	return &ReportMatrix{
		Weeks: weeks,
		Rows:  make(map[string][]Cell),
	}
}

// EnsureRow returns the cell slice for name, creating an all-no-data row
// if the matrix does not have one yet.
func (m *ReportMatrix) EnsureRow(name string) []Cell {
	if row, ok := m.Rows[name]; ok {
		return row
	}
	row := make([]Cell, len(m.Weeks))
	m.Rows[name] = row
	return row
}

// CellAt returns the cell for a row and column. A missing row yields a
// no-data cell.
func (m *ReportMatrix) CellAt(name string, col int) Cell {
	row, ok := m.Rows[name]
	if !ok || col < 0 || col >= len(row) {
		return Cell{}
	}
	return row[col]
}

// HasRow reports whether the matrix carries a row for name.
func (m *ReportMatrix) HasRow(name string) bool {
	_, ok := m.Rows[name]
	return ok
}

// EntityNames returns every row name except the reserved total row,
// sorted in byte order. Byte order over UTF-8 identifiers keeps output
// deterministic without locale-dependent collation.
func (m *ReportMatrix) EntityNames() []string {
	names := make([]string, 0, len(m.Rows))
	for name := range m.Rows {
		if name == TotalRowName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RowNames returns every row name in presentation order: entities sorted
// in byte order, then the total row last when present.
func (m *ReportMatrix) RowNames() []string {
	names := m.EntityNames()
	if m.HasRow(TotalRowName) {
		names = append(names, TotalRowName)
	}
	return names
}
