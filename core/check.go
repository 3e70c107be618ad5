package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// ExecuteHeadcountCheck validates the configured inputs without producing
// a report. It parses every stream, sizes the report window against the
// observed data and probes the archive backend. Unreadable or malformed
// inputs return an error; soft findings become warnings and a non-zero
// exit so the command can gate scheduled report jobs.
func ExecuteHeadcountCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	result, err := buildCheckResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	printCheckResult(result, cfg, time.Since(start))

	if !result.Passed() {
		fmt.Printf("%d warning(s) found\n", len(result.Warnings))
		os.Exit(1)
	}
	return nil
}

// buildCheckResult parses the inputs and collects preflight findings.
func buildCheckResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.CheckResult, error) {
	endings, err := WeekEndings(cfg.ReferenceDate, cfg.Weeks)
	if err != nil {
		return nil, err
	}

	data, err := LoadInputs(ctx, cfg)
	if err != nil {
		return nil, err
	}

	result := &schema.CheckResult{
		EventCount:  len(data.Events),
		OffsetCount: len(data.Offsets),
		WindowStart: endings[0],
		WindowEnd:   endings[len(endings)-1],
	}
	if data.History != nil {
		result.HistoryRows = len(data.History.Rows)
		result.HistoryWeeks = len(data.History.Weeks)
	}

	summarizeRecords(result, data.AllRecords())
	collectWarnings(result, data)
	probeArchive(result, cfg, mgr)

	return result, nil
}

// summarizeRecords fills the observed entity and date range fields.
func summarizeRecords(result *schema.CheckResult, records []schema.DeltaRecord) {
	entities := make(map[string]struct{})
	for _, rec := range records {
		entities[rec.EntityID] = struct{}{}
		if result.DataStart.IsZero() || rec.Date.Before(result.DataStart) {
			result.DataStart = rec.Date
		}
		if rec.Date.After(result.DataEnd) {
			result.DataEnd = rec.Date
		}
	}
	result.EntityCount = len(entities)
}

// collectWarnings flags input shapes that would produce a useless report.
func collectWarnings(result *schema.CheckResult, data *InputData) {
	if result.EventCount == 0 {
		result.Warnings = append(result.Warnings, "events stream is empty")
	}
	if result.DataStart.IsZero() {
		result.Warnings = append(result.Warnings, "no change records at all; every report cell would be no-data")
		return
	}
	if result.DataStart.After(result.WindowEnd) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("every record falls after the report window ending %s", schema.FormatDate(result.WindowEnd)))
		return
	}
	if result.WindowEnd.After(result.DataEnd) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("newest week ending %s is ahead of the newest record %s; trailing weeks will be no-data",
				schema.FormatDate(result.WindowEnd), schema.FormatDate(result.DataEnd)))
	}
}

// probeArchive checks that the configured archive backend answers.
func probeArchive(result *schema.CheckResult, cfg *contract.Config, mgr contract.StoreManager) {
	if cfg.ArchiveBackend == schema.NoneBackend {
		result.ArchiveOK = true
		return
	}
	status, err := mgr.GetReportStore().GetStatus()
	result.ArchiveOK = err == nil && status.Connected
	if !result.ArchiveOK {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("archive backend %s is not reachable; runs will not be recorded", cfg.ArchiveBackend))
	}
}

// printCheckResult prints the check outcome in a concise format suitable
// for scheduled jobs and CI logs.
func printCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) {
	fmt.Println("Input Check Results:")

	labels := []string{"Events:", "Offsets:", "History:", "Entities:", "Window:", "Data range:", "Archive:"}
	values := []any{
		fmt.Sprintf("%d records", result.EventCount),
		describeOptionalStream(cfg.OffsetsPath, fmt.Sprintf("%d records", result.OffsetCount)),
		describeOptionalStream(cfg.HistoryPath, fmt.Sprintf("%d rows x %d weeks", result.HistoryRows, result.HistoryWeeks)),
		result.EntityCount,
		fmt.Sprintf("%s → %s (%d weeks)",
			schema.FormatDate(result.WindowStart), schema.FormatDate(result.WindowEnd), cfg.Weeks),
		describeDataRange(result),
		describeArchive(result, cfg),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d records in %v\n\n", result.EventCount+result.OffsetCount, duration)

	if result.Passed() {
		fmt.Printf("%sinputs look ready for a report run\n", statusPrefix(cfg, true))
		return
	}
	for _, warning := range result.Warnings {
		fmt.Printf("%s%s\n", statusPrefix(cfg, false), warning)
	}
}

// describeOptionalStream renders a configured stream summary or marks it absent.
func describeOptionalStream(path, summary string) string {
	if path == "" {
		return "not configured"
	}
	return summary
}

// describeDataRange renders the observed record date range.
func describeDataRange(result *schema.CheckResult) string {
	if result.DataStart.IsZero() {
		return "no records"
	}
	return fmt.Sprintf("%s → %s", schema.FormatDate(result.DataStart), schema.FormatDate(result.DataEnd))
}

// describeArchive renders the archive probe outcome.
func describeArchive(result *schema.CheckResult, cfg *contract.Config) string {
	if cfg.ArchiveBackend == schema.NoneBackend {
		return "none"
	}
	if result.ArchiveOK {
		return fmt.Sprintf("%s (connected)", cfg.ArchiveBackend)
	}
	return fmt.Sprintf("%s (unreachable)", cfg.ArchiveBackend)
}

// statusPrefix returns the emoji prefix for result lines, honoring the
// emoji toggle.
func statusPrefix(cfg *contract.Config, ok bool) string {
	if !cfg.UseEmojis {
		return ""
	}
	if ok {
		return "✅ "
	}
	return "⚠️  "
}
