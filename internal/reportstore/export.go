package reportstore

import (
	"errors"
	"fmt"

	"github.com/tmorling/headcount/internal/parquet"
	"github.com/tmorling/headcount/schema"
)

// ExecuteArchiveExport performs the actual export of archived report data to Parquet files.
func ExecuteArchiveExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the report store
	store := Manager.GetReportStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no report data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total report runs: %d\n", status.TotalRuns)
	fmt.Printf("Total report cells: %d\n", status.TotalCells)

	// Retrieve all report runs
	reportRuns, err := store.GetReportRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}

	// Retrieve the cells of every run
	var reportCells []schema.ReportCellRecord
	for _, run := range reportRuns {
		cells, err := store.GetReportCells(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to retrieve cells for run %d: %w", run.RunID, err)
		}
		reportCells = append(reportCells, cells...)
	}

	// Convert to Parquet format
	parquetReportRuns := parquet.ConvertReportRunRecords(reportRuns)
	parquetReportCells := parquet.ConvertReportCellRecords(reportCells)

	// Write report runs to Parquet
	reportRunsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquetReportRuns, reportRunsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(parquetReportRuns), reportRunsFile)

	// Write report cells to Parquet
	reportCellsFile := outputFile + ".report_cells.parquet"
	if err := parquet.WriteReportCellsParquet(parquetReportCells, reportCellsFile); err != nil {
		return fmt.Errorf("failed to write report cells: %w", err)
	}
	fmt.Printf("Exported %d report cells to: %s\n", len(parquetReportCells), reportCellsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
