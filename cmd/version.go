package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of headcount.",
	Long: `Display the release version and build details.

Include this output when reporting a problem: report numbers are only
comparable across runs of the same release, so the version pins down
which accumulation and merge behavior produced a given archive.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("headcount CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
