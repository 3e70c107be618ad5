package schema

import "time"

// CheckResult represents the outcome of an input preflight check.
type CheckResult struct {
	EventCount   int
	OffsetCount  int
	EntityCount  int
	HistoryRows  int
	HistoryWeeks int
	DataStart    time.Time // Oldest observed record date, zero when no records
	DataEnd      time.Time // Newest observed record date, zero when no records
	WindowStart  time.Time
	WindowEnd    time.Time
	ArchiveOK    bool
	Warnings     []string
}

// Passed reports whether the preflight raised no warnings.
func (r *CheckResult) Passed() bool {
	return len(r.Warnings) == 0
}
