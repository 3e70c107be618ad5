package schema

import "errors"

// Sentinel errors for the two fatal failure classes. Callers wrap these
// with context via fmt.Errorf and %w, and dispatch with errors.Is.
var (
	// ErrConfiguration marks an invalid run configuration, detected
	// before any input is read.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrParse marks a malformed input line. Parsing is strict: a single
	// bad line fails the whole run rather than producing a silently
	// wrong report.
	ErrParse = errors.New("malformed input")
)
