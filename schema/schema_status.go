package schema

import "time"

// ArchiveStatus represents the status of the report archive store.
type ArchiveStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalCells    int              `json:"total_cells"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
