package schema

import (
	"sort"
	"time"
)

// ReportRunRecord represents a row from the headcount_report_runs table.
type ReportRunRecord struct {
	RunID         int64      `json:"run_id"`
	ReferenceDate time.Time  `json:"reference_date"`
	Weeks         int32      `json:"weeks"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs *int32     `json:"run_duration_ms,omitempty"`
	SeriesCount   int32      `json:"series_count"`
	FinalTotal    *int64     `json:"final_total,omitempty"`
	Status        RunStatus  `json:"status"`
	ConfigParams  *string    `json:"config_params,omitempty"`
}

// ReportCellRecord represents a row from the headcount_report_cells table.
// Value is nil for cells that had no observed data.
type ReportCellRecord struct {
	RunID    int64
	RowName  string
	WeekDate time.Time
	Value    *int64
}

// MatrixFromCells rebuilds a report matrix from archived cell rows, the
// inverse of FlattenCells. Week columns come out ascending regardless of
// row order in the archive.
func MatrixFromCells(cells []ReportCellRecord) *ReportMatrix {
	weekSet := make(map[string]time.Time)
	for _, c := range cells {
		weekSet[FormatDate(c.WeekDate)] = c.WeekDate
	}
	weeks := make([]time.Time, 0, len(weekSet))
	for _, d := range weekSet {
		weeks = append(weeks, d)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	cols := make(map[string]int, len(weeks))
	for i, d := range weeks {
		cols[FormatDate(d)] = i
	}

	m := NewReportMatrix(weeks)
	for _, c := range cells {
		row := m.EnsureRow(c.RowName)
		if c.Value != nil {
			row[cols[FormatDate(c.WeekDate)]] = KnownCell(*c.Value)
		}
	}
	return m
}

// FlattenCells converts a matrix into archive cell rows, one per matrix
// cell, in presentation order.
func (m *ReportMatrix) FlattenCells(runID int64) []ReportCellRecord {
	cells := make([]ReportCellRecord, 0, len(m.Rows)*len(m.Weeks))
	for _, name := range m.RowNames() {
		row := m.Rows[name]
		for i, week := range m.Weeks {
			rec := ReportCellRecord{
				RunID:    runID,
				RowName:  name,
				WeekDate: week,
			}
			if row[i].Valid {
				v := row[i].Value
				rec.Value = &v
			}
			cells = append(cells, rec)
		}
	}
	return cells
}
