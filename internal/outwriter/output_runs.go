package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// WriteRunResults outputs archived report runs, newest first, dispatching
// based on the configured output format.
func WriteRunResults(runs []schema.ReportRunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeRunsCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeRunsTable(w, runs)
		}, "Wrote table")
	}
}

// writeRunsCSV writes the run listing in CSV format.
func writeRunsCSV(w io.Writer, runs []schema.ReportRunRecord) error {
	header := []string{"run_id", "reference_date", "weeks", "series", "final_total", "status", "start_time", "duration_ms"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, run := range runs {
			row := []string{
				strconv.FormatInt(run.RunID, 10),
				schema.FormatDate(run.ReferenceDate),
				strconv.Itoa(int(run.Weeks)),
				strconv.Itoa(int(run.SeriesCount)),
				formatOptionalInt(run.FinalTotal),
				string(run.Status),
				run.StartTime.Format(time.RFC3339),
				formatOptionalMs(run.RunDurationMs),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRunsTable writes the run listing as a human-readable table.
func writeRunsTable(w io.Writer, runs []schema.ReportRunRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Reference", "Weeks", "Series", "Total", "Status", "Started", "Duration"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			schema.FormatDate(run.ReferenceDate),
			strconv.Itoa(int(run.Weeks)),
			strconv.Itoa(int(run.SeriesCount)),
			formatOptionalInt(run.FinalTotal),
			string(run.Status),
			run.StartTime.Format(time.RFC3339),
			formatOptionalMs(run.RunDurationMs),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d archived run(s)\n", len(runs))
	return err
}

// formatOptionalInt renders a nullable count, using the no-data marker for nil.
func formatOptionalInt(v *int64) string {
	if v == nil {
		return schema.NoDataMarker
	}
	return strconv.FormatInt(*v, 10)
}

// formatOptionalMs renders a nullable millisecond duration.
func formatOptionalMs(v *int32) string {
	if v == nil {
		return schema.NoDataMarker
	}
	return fmt.Sprintf("%dms", *v)
}
