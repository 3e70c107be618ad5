package schema

// ReportStats summarizes one report computation for output footers.
type ReportStats struct {
	EventCount  int
	OffsetCount int
	HistoryRows int
}

// ReportRowJSON is one matrix row in JSON form. No-data cells render as
// null rather than a fake zero.
type ReportRowJSON struct {
	Name   string   `json:"name"`
	Values []*int64 `json:"values"`
}

// ReportJSON is the JSON rendering of a report matrix.
type ReportJSON struct {
	Weeks []string        `json:"weeks"`
	Rows  []ReportRowJSON `json:"rows"`
}

// BuildReportJSON converts a matrix into its JSON rendering, preserving
// presentation order.
func BuildReportJSON(m *ReportMatrix) ReportJSON {
	out := ReportJSON{
		Weeks: FormatDates(m.Weeks),
		Rows:  make([]ReportRowJSON, 0, len(m.Rows)),
	}
	for _, name := range m.RowNames() {
		row := ReportRowJSON{
			Name:   name,
			Values: make([]*int64, len(m.Weeks)),
		}
		for i, c := range m.Rows[name] {
			if c.Valid {
				v := c.Value
				row.Values[i] = &v
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
