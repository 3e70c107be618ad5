// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a report matrix using the configured output format.
func (ow *OutWriter) WriteReport(m *schema.ReportMatrix, cfg *contract.Config, stats *schema.ReportStats, duration time.Duration) error {
	return WriteMatrixResults(m, cfg, stats, duration)
}

// WriteRuns prints archived report runs using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.ReportRunRecord, cfg *contract.Config) error {
	return WriteRunResults(runs, cfg)
}
