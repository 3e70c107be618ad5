package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/internal/logging"
	"github.com/tmorling/headcount/internal/outwriter"
	"github.com/tmorling/headcount/internal/reportstore"
	"github.com/tmorling/headcount/schema"
)

// archiveSetup loads minimal configuration needed for archive operations.
// This is used by commands that need archive access without full shared setup.
func archiveSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// Validate output and backend settings; input streams are never read
	// by archive commands, so path resolution is skipped entirely.
	if err := contract.ValidateCommonInputs(cfg, input); err != nil {
		return err
	}

	logging.Init(cfg.Verbose, cfg.LogFile)

	// Initialize the store with the loaded config
	if err := reportstore.InitStores(cfg.ArchiveBackend, cfg.ArchiveDBConnect); err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}

	return nil
}

// archiveSetupWrapper wraps archiveSetup to provide PreRunE for archive commands.
func archiveSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveSetup()
}

// archiveMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func archiveMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := contract.ValidateCommonInputs(cfg, input); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if cfg.ArchiveBackend == schema.SQLiteBackend && cfg.ArchiveDBConnect == "" {
		cfg.ArchiveDBConnect = contract.GetArchiveDBFilePath()
	}

	return nil
}

// archiveMigrateSetupWrapper wraps archiveMigrateSetup to provide PreRunE for migrate command.
func archiveMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveMigrateSetup()
}

// archiveCmd focused on report archive management.
//
// Note: Archive subcommands use minimal initialization (archiveSetup) instead of
// the full sharedSetup used by report commands. This avoids events file validation
// and window processing for operations that only touch the database.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage recorded report runs and exports",
	Long: `Manage the archive of past report runs used for auditing and trend review.

When enabled, Headcount records every report run, storing:
- Run metadata (reference date, window length, duration, final total)
- The full report grid: one row per (course, week ending) cell

This lets you review how enrollment totals evolved run over run and export
the full history for BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show archive statistics and connection health
  list    - List recorded report runs
  show    - Re-render the report grid of one archived run
  clear   - Remove all archived data
  export  - Export data to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check archive status
  headcount archive status --archive-backend sqlite

  # Export for analysis in pandas/DuckDB
  headcount archive export --archive-backend sqlite --output-file archive-data.parquet`,
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show detailed information about the report run archive.

Displays:
- Backend type and connection status
- Total number of report runs stored
- Last and oldest run timestamps
- Total report cells stored across all runs
- Database table sizes

Use this to:
- Verify run recording is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check archive status
  headcount archive status --archive-backend sqlite`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := reportstore.Manager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		reportstore.PrintArchiveStatus(status)
	},
}

// archiveListCmd lists recorded report runs.
var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded report runs, newest first",
	Long: `List every recorded report run with its reference date, window length,
series count, final total, status and duration.

Honors the global --output flag, so runs can be rendered as a table for
reading or as csv/json for scripts.

Examples:
  # Review recent runs
  headcount archive list --archive-backend sqlite

  # Feed run metadata into a script
  headcount archive list --archive-backend sqlite --output json`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := reportstore.Manager.GetReportStore().GetReportRuns(0)
		if err != nil {
			contract.LogFatal("Failed to list archived runs", err)
		}
		if err := outwriter.NewOutWriter().WriteRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to write run results", err)
		}
	},
}

// archiveShowCmd re-renders one archived report grid.
var archiveShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Re-render the report grid of one archived run",
	Long: `Load the stored cells of a single archived run and render them exactly
like a fresh report, without touching any input stream.

Select the run with --run <id>, or --latest for the newest one. Honors
the global --output flag, so an archived run can be re-exported as the
canonical CSV and used as --history input for a later run.

Examples:
  # Inspect the newest archived report
  headcount archive show --latest --archive-backend sqlite

  # Recover the history CSV from run 12
  headcount archive show --run 12 --archive-backend sqlite --output csv --output-file report.csv`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := reportstore.Manager.GetReportStore()

		runID := cfg.RunID
		if cfg.Latest {
			latestID, err := store.GetLatestRunID()
			if err != nil {
				contract.LogFatal("Failed to resolve the latest run", err)
			}
			runID = latestID
		}
		if runID <= 0 {
			contract.LogFatal("Failed to select a run", fmt.Errorf("provide --run <id> or --latest"))
		}

		cells, err := store.GetReportCells(runID)
		if err != nil {
			contract.LogFatal("Failed to load archived cells", err)
		}
		if len(cells) == 0 {
			contract.LogFatal("Failed to load archived cells", fmt.Errorf("run %d has no archived cells", runID))
		}

		matrix := schema.MatrixFromCells(cells)
		if err := outwriter.WriteMatrixResults(matrix, cfg, nil, 0); err != nil {
			contract.LogFatal("Failed to write archived report", err)
		}
	},
}

// archiveClearCmd clears the archived data.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived report runs and cells",
	Long: `Delete all stored report runs and their cell grids.

This removes:
- All run metadata
- Every archived (course, week ending) cell

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  headcount archive export --archive-backend sqlite --output-file backup.parquet
  headcount archive clear --archive-backend sqlite

  # Clear and start fresh
  headcount archive clear --archive-backend sqlite`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := reportstore.ClearArchive(cfg.ArchiveBackend, contract.GetArchiveDBFilePath(), cfg.ArchiveDBConnect); err != nil {
			contract.LogFatal("Failed to clear archive data", err)
		}
		fmt.Println("Archive data cleared successfully.")
	},
}

// archiveExportCmd exports archived data to Parquet files.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived runs to Parquet for BI tools and analytics",
	Long: `Export all archived report data to Parquet format for use with analytics
tools.

Exports two datasets:
- Report runs - metadata about each report execution
- Report cells - every (course, week ending) value across all runs

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  headcount archive export --archive-backend sqlite --output-file headcount-data.parquet

  # Use with DuckDB for analysis
  headcount archive export --archive-backend sqlite --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet/runs.parquet') LIMIT 10"`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := reportstore.ExecuteArchiveExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export archive data", err)
		}
	},
}

// archiveMigrateCmd runs database migrations for the report store.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report archive.

Migrations allow:
- Upgrading to new schema versions when Headcount is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  headcount archive migrate --archive-backend sqlite

  # Migrate to specific version
  headcount archive migrate --archive-backend sqlite --target-version 1

  # Rollback to previous version
  headcount archive migrate --archive-backend sqlite --target-version 0`,
	PreRunE: archiveMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := reportstore.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
