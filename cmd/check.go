package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tmorling/headcount/core"
	"github.com/tmorling/headcount/internal/contract"
)

// checkCmd validates inputs without writing a report.
var checkCmd = &cobra.Command{
	Use:   "check [events-file]",
	Short: "Validate report inputs without writing a report (fails on warnings)",
	Long: `Parse every configured input stream completely and report what a run
would see, without computing or writing anything.

Checks performed:
- Events, offsets and history parse cleanly (malformed rows are fatal)
- Record counts and date ranges per stream
- The report window against the data: empty streams, records entirely
  after the window, and trailing weeks with no data are flagged
- Archive backend connectivity when one is configured

Exits non-zero when any warning fires, so it can gate a scheduled report
job in CI before the real run.

Examples:
  # Validate this week's inputs
  headcount check enrollments.tsv --date 2013-01-17 --weeks 3

  # Include the offsets and history streams
  headcount check enrollments.tsv --offsets baseline.tsv --history report.csv

  # Verify the archive database is reachable too
  headcount check enrollments.tsv --archive-backend mysql --archive-db-connect "$HEADCOUNT_ARCHIVE_DB_CONNECT"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Warning evaluation and the non-zero exit happen inside ExecuteHeadcountCheck
		if err := core.ExecuteHeadcountCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Input check failed", err)
		}
	},
}
