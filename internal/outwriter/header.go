package outwriter

import (
	"fmt"
	"os"
	"strings"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// LogReportHeader prints a concise, 2-line header for a report run. It
// goes to stderr so csv and json output on stdout stay machine-readable.
func LogReportHeader(cfg *contract.Config) {
	inputs := []string{cfg.EventsPath}
	if cfg.OffsetsPath != "" {
		inputs = append(inputs, "offsets: "+cfg.OffsetsPath)
	}
	if cfg.HistoryPath != "" {
		inputs = append(inputs, "history: "+cfg.HistoryPath)
	}

	// Line 1: The input summary
	fmt.Fprintf(os.Stderr, "%sEvents: %s\n", headerPrefix(cfg, "🔎 "), strings.Join(inputs, ", "))

	// Line 2: The report window being computed
	fmt.Fprintf(os.Stderr, "%sWindow: %d week(s) ending %s\n",
		headerPrefix(cfg, "📅 "), cfg.Weeks, schema.FormatDate(cfg.ReferenceDate))
}

// headerPrefix returns the given emoji prefix, or nothing when emojis are
// disabled.
func headerPrefix(cfg *contract.Config, emoji string) string {
	if cfg.UseEmojis {
		return emoji
	}
	return ""
}
