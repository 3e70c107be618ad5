// Package core implements the weekly enrollment reporting pipeline:
// parsing change streams, bucketing them into week endings, merging with
// prior reports, and recording runs in the archive.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/internal/outwriter"
	"github.com/tmorling/headcount/schema"
)

// GetReportMatrix computes the merged weekly matrix for the configured
// inputs without writing it anywhere. It backs both the report command
// and the MCP tools.
func GetReportMatrix(ctx context.Context, cfg *contract.Config) (*schema.ReportMatrix, *schema.ReportStats, error) {
	// --- 1. Calendar Phase ---
	endings, err := WeekEndings(cfg.ReferenceDate, cfg.Weeks)
	if err != nil {
		return nil, nil, err
	}

	// --- 2. Load Phase ---
	data, err := LoadInputs(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// --- 3. Accumulation Phase ---
	fresh, err := Accumulate(data.AllRecords(), endings)
	if err != nil {
		return nil, nil, err
	}
	AppendTotalRow(fresh)

	// --- 4. Merge Phase ---
	merged := MergeHistory(fresh, data.History)

	stats := &schema.ReportStats{
		EventCount:  len(data.Events),
		OffsetCount: len(data.Offsets),
	}
	if data.History != nil {
		stats.HistoryRows = len(data.History.Rows)
	}
	return merged, stats, nil
}

// ExecuteHeadcountReport runs the full report pipeline: compute the
// matrix, record the run in the archive, and write the result in the
// configured output format.
func ExecuteHeadcountReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	store := mgr.GetReportStore()

	outwriter.LogReportHeader(cfg)

	runID, err := store.BeginReportRun(start, cfg.ReferenceDate, cfg.Weeks, describeRunConfig(cfg))
	if err != nil {
		return fmt.Errorf("beginning archive run: %w", err)
	}

	matrix, stats, err := GetReportMatrix(ctx, cfg)
	if err != nil {
		finishRun(store, runID, 0, nil, schema.RunFailed)
		return err
	}
	duration := time.Since(start)

	// --- 5. Archive Phase ---
	if err := store.InsertReportCells(matrix.FlattenCells(runID)); err != nil {
		log.Warn().Err(err).Int64("run_id", runID).Msg("failed to archive report cells")
	}
	finishRun(store, runID, len(matrix.Rows), finalTotal(matrix), schema.RunCompleted)

	// --- 6. Output Phase ---
	return outwriter.NewOutWriter().WriteReport(matrix, cfg, stats, duration)
}

// finishRun closes out an archive run, logging rather than failing the
// report when the archive is unavailable.
func finishRun(store contract.ReportStore, runID int64, seriesCount int, total *int64, status schema.RunStatus) {
	if err := store.EndReportRun(runID, time.Now(), seriesCount, total, status); err != nil {
		log.Warn().Err(err).Int64("run_id", runID).Msg("failed to finalize archive run")
	}
}

// finalTotal returns the newest total cell that carries data, or nil when
// the total row is entirely no-data.
func finalTotal(m *schema.ReportMatrix) *int64 {
	row, ok := m.Rows[schema.TotalRowName]
	if !ok {
		return nil
	}
	for i := len(row) - 1; i >= 0; i-- {
		if row[i].Valid {
			v := row[i].Value
			return &v
		}
	}
	return nil
}

// describeRunConfig collects the parameters recorded with an archived run.
func describeRunConfig(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"reference_date": schema.FormatDate(cfg.ReferenceDate),
		"weeks":          cfg.Weeks,
		"events":         cfg.EventsPath,
	}
	if cfg.OffsetsPath != "" {
		params["offsets"] = cfg.OffsetsPath
	}
	if cfg.HistoryPath != "" {
		params["history"] = cfg.HistoryPath
	}
	return params
}
