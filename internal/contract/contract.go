// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/tmorling/headcount/schema"
)

// StoreManager defines the interface for accessing the report archive.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetReportStore() ReportStore
}

// ReportStore defines the interface for recording and querying report runs.
type ReportStore interface {
	// BeginReportRun creates a new run row and returns its unique ID
	BeginReportRun(startTime time.Time, referenceDate time.Time, weeks int, configParams map[string]any) (int64, error)

	// EndReportRun updates the run with completion data
	EndReportRun(runID int64, endTime time.Time, seriesCount int, finalTotal *int64, status schema.RunStatus) error

	// InsertReportCells stores the flattened matrix cells of a run
	InsertReportCells(cells []schema.ReportCellRecord) error

	// GetReportRuns returns archived runs, newest first, capped at limit (0 = all)
	GetReportRuns(limit int) ([]schema.ReportRunRecord, error)

	// GetReportCells returns the archived cells of one run in row-major order
	GetReportCells(runID int64) ([]schema.ReportCellRecord, error)

	// GetLatestRunID returns the ID of the newest archived run
	GetLatestRunID() (int64, error)

	// GetStatus returns status information about the archive store
	GetStatus() (schema.ArchiveStatus, error)

	// Close closes the underlying connection
	Close() error
}
