package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tmorling/headcount/internal/mcpserver"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Headcount MCP server",
	Long:  `Launch an MCP server that allows AI agents to build enrollment reports via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Setup must not print to stdout since stdio carries the
		// protocol. Tool calls supply their own input paths.
		return mcpSetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcpserver.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
