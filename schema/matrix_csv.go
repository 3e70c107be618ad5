package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"
)

// WriteMatrixCSV writes m in the canonical report layout: a header row of
// the name column plus one ISO date per week, then one row per series in
// presentation order. This layout round-trips through ParseMatrixCSV, so
// a written report can feed a later run as its history input.
func WriteMatrixCSV(w io.Writer, m *ReportMatrix) error {
	cw := csv.NewWriter(w)

	header := append([]string{NameColumn}, FormatDates(m.Weeks)...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, name := range m.RowNames() {
		row = row[:0]
		row = append(row, name)
		for _, c := range m.Rows[name] {
			row = append(row, FormatCell(c))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseMatrixCSV reads a matrix in the canonical report layout. Week
// columns may arrive in any order and are normalized to ascending dates.
// Empty cells are treated like the no-data marker, which tolerates files
// that passed through spreadsheet tooling.
func ParseMatrixCSV(r io.Reader) (*ReportMatrix, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file, expected a header row", ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	if header[0] != NameColumn {
		return nil, fmt.Errorf("%w: line 1: header must begin with %q, got %q", ErrParse, NameColumn, header[0])
	}

	weeks, err := parseWeekHeader(header[1:])
	if err != nil {
		return nil, err
	}

	m := NewReportMatrix(weeks)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, err)
		}
		line, _ := cr.FieldPos(0)
		name := rec[0]
		if m.HasRow(name) {
			return nil, fmt.Errorf("%w: line %d: duplicate row %q", ErrParse, line, name)
		}
		row := m.EnsureRow(name)
		for i, field := range rec[1:] {
			if field == NoDataMarker || field == "" {
				continue
			}
			v, err := ParseCellValue(field)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrParse, line, err)
			}
			row[i] = KnownCell(v)
		}
	}

	m.sortWeeks()
	return m, nil
}

// parseWeekHeader parses and validates the date columns of a matrix header.
func parseWeekHeader(fields []string) ([]time.Time, error) {
	weeks := make([]time.Time, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for i, field := range fields {
		d, err := ParseDate(field)
		if err != nil {
			return nil, fmt.Errorf("%w: line 1: column %d: %s", ErrParse, i+2, err)
		}
		if _, dup := seen[field]; dup {
			return nil, fmt.Errorf("%w: line 1: duplicate week column %q", ErrParse, field)
		}
		seen[field] = struct{}{}
		weeks[i] = d
	}
	return weeks, nil
}

// sortWeeks reorders the matrix columns into ascending date order,
// permuting every row to match.
func (m *ReportMatrix) sortWeeks() {
	if sort.SliceIsSorted(m.Weeks, func(i, j int) bool { return m.Weeks[i].Before(m.Weeks[j]) }) {
		return
	}
	perm := make([]int, len(m.Weeks))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(i, j int) bool { return m.Weeks[perm[i]].Before(m.Weeks[perm[j]]) })

	sorted := make([]time.Time, len(m.Weeks))
	for i, p := range perm {
		sorted[i] = m.Weeks[p]
	}
	m.Weeks = sorted

	for name, row := range m.Rows {
		next := make([]Cell, len(row))
		for i, p := range perm {
			next[i] = row[p]
		}
		m.Rows[name] = next
	}
}
