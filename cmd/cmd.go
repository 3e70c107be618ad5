// Package cmd defines the command-line interface for headcount.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(archiveCmd)

	// Add the archive subcommands to the parent archive command
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveClearCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("offsets", "", "Optional offsets file with baseline counts (same format as the events file)")
	rootCmd.PersistentFlags().String("history", "", "Optional report CSV from an earlier run to merge into this one")
	rootCmd.PersistentFlags().String("date", "", "Reference date, the final week ending, in ISO8601 (default: today UTC)")
	rootCmd.PersistentFlags().IntP("weeks", "w", schema.DefaultWeeks, "Number of week-ending columns in the report window")
	rootCmd.PersistentFlags().String("output", string(schema.TableOut), "Output format: table or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("archive-backend", string(schema.NoneBackend), "Archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji prefixes on status lines (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored cells in table output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Optional path for a rotating JSON log file")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of archiveShowCmd to Viper
	archiveShowCmd.Flags().Int64("run", 0, "Archived run ID to render")
	archiveShowCmd.Flags().Bool("latest", false, "Render the newest archived run")
	if err := viper.BindPFlags(archiveShowCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive show flags", err)
	}

	// Bind all flags of archiveMigrateCmd to Viper
	archiveMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(archiveMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive migrate flags", err)
	}
}
