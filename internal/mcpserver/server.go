// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tmorling/headcount/internal/contract"
)

// NewMCPServer initializes and configures the Headcount MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Headcount Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: run_report ---
	s.AddTool(mcp.NewTool("run_report",
		mcp.WithDescription("Compute a cumulative weekly enrollment report from change streams. Returns the report as CSV."),
		mcp.WithString("events", mcp.Description("Path to the tab-separated events file."), mcp.Required()),
		mcp.WithString("offsets", mcp.Description("Path to an optional tab-separated offsets file applied as baseline corrections.")),
		mcp.WithString("history", mcp.Description("Path to an optional CSV report from a prior run to merge with.")),
		mcp.WithString("date", mcp.Description("Reference date naming the final week ending (YYYY-MM-DD). Defaults to the configured date.")),
		mcp.WithNumber("weeks", mcp.Description("Number of week-ending columns. Defaults to the configured window.")),
	), h.handleRunReport)

	// --- 2. Tool: list_runs ---
	s.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List archived report runs, newest first. Returns runs as JSON."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned.")),
	), h.handleListRuns)

	return s
}

// StartMCPServer starts the Headcount MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
