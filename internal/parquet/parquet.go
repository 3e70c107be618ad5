// Package parquet provides data structures and functions for exporting archived
// report data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/tmorling/headcount/schema"
)

// ReportRun represents a single report run with metadata.
// This struct maps to the headcount_report_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this report run
	RunID int64 `parquet:"run_id,snappy"`

	// ReferenceDate is the last week ending of the report window (YYYY-MM-DD)
	ReferenceDate string `parquet:"reference_date,snappy"`

	// Weeks is the number of week columns the report covered
	Weeks int32 `parquet:"weeks,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// SeriesCount is the number of report rows produced, aggregate row included
	SeriesCount int32 `parquet:"series_count,snappy"`

	// FinalTotal is the aggregate enrollment at the reference date (nullable)
	FinalTotal *int64 `parquet:"final_total,optional,snappy"`

	// Status indicates whether the run is running, completed or failed
	Status string `parquet:"status,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ReportCell represents one cell of an archived report matrix.
// This struct maps to the headcount_report_cells database table.
type ReportCell struct {
	// RunID references the parent report run
	RunID int64 `parquet:"run_id,snappy"`

	// RowName is the series the cell belongs to
	RowName string `parquet:"row_name,snappy"`

	// WeekDate is the week ending the cell belongs to (YYYY-MM-DD)
	WeekDate string `parquet:"week_date,snappy"`

	// Value is the cumulative count, nil when no data was observed
	Value *int64 `parquet:"value,optional,snappy"`
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReportRun struct tags
	writer := parquet.NewGenericWriter[ReportRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteReportCellsParquet writes a slice of ReportCell structs to a Parquet file.
func WriteReportCellsParquet(data []ReportCell, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReportCell struct tags
	writer := parquet.NewGenericWriter[ReportCell](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchReportRuns generates sample ReportRun data for demonstration.
func MockFetchReportRuns() []ReportRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(1500 * time.Millisecond)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	finalTotal1 := int64(70)
	configParams1 := `{"reference_date":"2013-01-17","weeks":3,"events":"enrollments.tsv"}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(900 * time.Millisecond)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	finalTotal2 := int64(24)
	configParams2 := `{"reference_date":"2013-02-18","weeks":2,"events":"enrollments.tsv"}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, finalTotal3, configParams3 are nil to demonstrate nullable fields

	return []ReportRun{
		{
			RunID:         1,
			ReferenceDate: "2013-01-17",
			Weeks:         3,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			SeriesCount:   4,
			FinalTotal:    &finalTotal1,
			Status:        string(schema.RunCompleted),
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			ReferenceDate: "2013-02-18",
			Weeks:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			SeriesCount:   3,
			FinalTotal:    &finalTotal2,
			Status:        string(schema.RunCompleted),
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			ReferenceDate: "2013-03-28",
			Weeks:         4,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			SeriesCount:   0,
			FinalTotal:    nil, // Not yet known - nullable field
			Status:        string(schema.RunRunning),
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchReportCells generates sample ReportCell data for demonstration.
func MockFetchReportCells() []ReportCell {
	value1 := int64(10)
	value2 := int64(20)
	total1 := int64(50)
	total2 := int64(70)

	return []ReportCell{
		{
			RunID:    1,
			RowName:  "course_1",
			WeekDate: "2013-01-03",
			Value:    &value1,
		},
		{
			RunID:    1,
			RowName:  "course_1",
			WeekDate: "2013-01-10",
			Value:    &value2,
		},
		{
			RunID:    1,
			RowName:  "course_2",
			WeekDate: "2013-01-03",
			Value:    nil, // No data observed yet - nullable field
		},
		{
			RunID:    1,
			RowName:  schema.TotalRowName,
			WeekDate: "2013-01-03",
			Value:    &total1,
		},
		{
			RunID:    1,
			RowName:  schema.TotalRowName,
			WeekDate: "2013-01-10",
			Value:    &total2,
		},
	}
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:         record.RunID,
			ReferenceDate: schema.FormatDate(record.ReferenceDate),
			Weeks:         record.Weeks,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			SeriesCount:   record.SeriesCount,
			FinalTotal:    record.FinalTotal,
			Status:        string(record.Status),
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertReportCellRecords converts schema.ReportCellRecord to ReportCell for Parquet export.
func ConvertReportCellRecords(records []schema.ReportCellRecord) []ReportCell {
	result := make([]ReportCell, len(records))
	for i, record := range records {
		result[i] = ReportCell{
			RunID:    record.RunID,
			RowName:  record.RowName,
			WeekDate: schema.FormatDate(record.WeekDate),
			Value:    record.Value,
		}
	}
	return result
}
