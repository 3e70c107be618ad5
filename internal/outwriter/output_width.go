package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/tmorling/headcount/internal/contract"
)

// weekColumnWidth is the rendered width of one week column: an ISO date
// plus cell padding and a separator.
const weekColumnWidth = 13

// GetMaxTableNameWidth calculates the maximum width for row names in table
// output based on terminal width. Long entity ids get truncated so at
// least a couple of week columns stay visible.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := resolveTerminalWidth(cfg)

	// Reserve space for two week columns plus borders and padding
	available := termWidth - 2*weekColumnWidth - 10
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 60 {
		// Maximum name width to keep week columns on screen
		return 60
	}
	return available
}

// VisibleWeekColumns reports how many of the newest week columns fit in
// the terminal alongside a name column of the given width. Reports can
// span a year of weeks; the table shows the newest ones that fit and the
// footer says how many were hidden.
func VisibleWeekColumns(cfg *contract.Config, nameWidth, totalWeeks int) int {
	termWidth := resolveTerminalWidth(cfg)

	fit := (termWidth - nameWidth - 4) / weekColumnWidth
	if fit < 1 {
		fit = 1
	}
	if fit > totalWeeks {
		fit = totalWeeks
	}
	return fit
}

// resolveTerminalWidth returns the effective terminal width, honoring an
// explicit override from flag or config.
func resolveTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}
