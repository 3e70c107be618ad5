package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/tmorling/headcount/schema"
)

// Color variables for console output.
var (
	NegativeColor = color.New(color.FgRed)  // negative running totals stand out
	NoDataColor   = color.New(color.Faint)  // no-data markers recede
	TotalColor    = color.New(color.FgCyan) // the aggregate row label
)

// FormatCellColored renders a cell for table output. With colors enabled,
// negative counts turn red and no-data markers are dimmed; the plain text
// used for CSV and JSON output is untouched.
func FormatCellColored(c schema.Cell, useColors bool) string {
	text := schema.FormatCell(c)
	if !useColors {
		return text
	}
	switch {
	case !c.Valid:
		return NoDataColor.Sprint(text)
	case c.Value < 0:
		return NegativeColor.Sprint(text)
	default:
		return text
	}
}

// FormatRowLabel renders a row name for table output, highlighting the
// aggregate row when colors are enabled.
func FormatRowLabel(name string, useColors bool) string {
	if useColors && name == schema.TotalRowName {
		return TotalColor.Sprint(name)
	}
	return name
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. It falls back to os.Stdout when no path is
// configured.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetArchiveDBFilePath returns the path to the SQLite DB file for the
// report archive.
func GetArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".headcount_archive.db"
	}
	return filepath.Join(homeDir, ".headcount_archive.db")
}

// TruncateName truncates a row name to a maximum width with an ellipsis
// prefix. The tail of an identifier is usually the distinguishing part,
// so the head is what gets cut. Requires maxWidth > 3 so there is room
// for both the "..." prefix and at least one character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
