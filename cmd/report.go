package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tmorling/headcount/core"
	"github.com/tmorling/headcount/internal/contract"
)

// reportCmd runs the full report pipeline.
var reportCmd = &cobra.Command{
	Use:   "report [events-file]",
	Short: "Build the weekly cumulative enrollment report.",
	Long: `Read enrollment change events and build a cumulative total per course
for each week ending in the report window.

Each event row is "course_id<TAB>date<TAB>delta" where delta is a signed
enrollment change. Events are grouped into weekly buckets ending on the
reference date, summed per course, and accumulated into running totals.
A synthetic "Total Enrollment" row sums all courses per week.

Optional inputs:
- An offsets file (same format) adds baseline counts that predate the
  event stream, e.g. students imported from a legacy system.
- A history CSV from an earlier run is merged in, so a report can grow
  week over week without reprocessing old events.

Examples:
  # Report the last 10 weeks ending today
  headcount report enrollments.tsv

  # Pin the reference date and window length
  headcount report enrollments.tsv --date 2013-01-17 --weeks 3

  # Merge last week's report and write CSV for next week
  headcount report enrollments.tsv --history report.csv --output csv --output-file report.csv

  # Record the run in a local archive
  headcount report enrollments.tsv --archive-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHeadcountReport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}
