package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tmorling/headcount/core"
	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleRunReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.EventsPath = request.GetString("events", "")
	if cfg.EventsPath == "" {
		return mcp.NewToolResultError("an events file is required"), nil
	}
	// The call's arguments fully describe its inputs, so optional streams
	// from the base config never leak into a call that omitted them.
	cfg.OffsetsPath = request.GetString("offsets", "")
	cfg.HistoryPath = request.GetString("history", "")

	if d := request.GetString("date", ""); d != "" {
		date, err := schema.ParseDate(d)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
		}
		cfg.ReferenceDate = date
	}
	if w := request.GetInt("weeks", 0); w > 0 {
		cfg.Weeks = w
	}

	matrix, _, err := core.GetReportMatrix(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := schema.WriteMatrixCSV(&buf, matrix); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering report failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandler) handleListRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)

	runs, err := h.mgr.GetReportStore().GetReportRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
