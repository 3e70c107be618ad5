package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// WriteMatrixResults outputs a report matrix, dispatching based on the
// configured output format. CSV output is the canonical report layout
// that later runs accept as history input. stats may be nil when the
// matrix was loaded back from the archive rather than freshly computed.
func WriteMatrixResults(m *schema.ReportMatrix, cfg *contract.Config, stats *schema.ReportStats, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportJSONResults(m, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCSVResults(m, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeReportTable(m, cfg, stats, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeReportJSONResults handles opening the file and calling the JSON writer.
func writeReportJSONResults(m *schema.ReportMatrix, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		return writeJSON(w, schema.BuildReportJSON(m))
	}, "Wrote JSON")
}

// writeReportCSVResults handles opening the file and calling the canonical CSV writer.
func writeReportCSVResults(m *schema.ReportMatrix, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		return schema.WriteMatrixCSV(w, m)
	}, "Wrote CSV")
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(m *schema.ReportMatrix, cfg *contract.Config, stats *schema.ReportStats, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	nameWidth := GetMaxTableNameWidth(cfg)
	visible := VisibleWeekColumns(cfg, nameWidth, len(m.Weeks))
	firstCol := len(m.Weeks) - visible

	// 1. Define Headers: name plus the newest week endings that fit
	headers := []string{"Name"}
	headers = append(headers, schema.FormatDates(m.Weeks[firstCol:])...)
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, name := range m.RowNames() {
		row := []string{
			contract.FormatRowLabel(contract.TruncateName(name, nameWidth), cfg.UseColors),
		}
		for _, c := range m.Rows[name][firstCol:] {
			row = append(row, contract.FormatCellColored(c, cfg.UseColors))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary lines
	if firstCol > 0 {
		if _, err := fmt.Fprintf(writer, "Showing the last %d of %d weeks (widen the terminal or use --output csv for all)\n", visible, len(m.Weeks)); err != nil {
			return err
		}
	}
	if stats == nil {
		_, err := fmt.Fprintf(writer, "Showing %d series over %d weeks\n", len(m.Rows), len(m.Weeks))
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d series over %d weeks (events: %d, offsets: %d, history rows: %d)\n",
		len(m.Rows), len(m.Weeks), stats.EventCount, stats.OffsetCount, stats.HistoryRows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Archive backend: %s\n", duration, cfg.ArchiveBackend); err != nil {
		return err
	}
	return nil
}
