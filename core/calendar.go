package core

import (
	"fmt"
	"time"

	"github.com/tmorling/headcount/schema"
)

// WeekEndings returns the ascending week-ending dates of a report window:
// weeks dates spaced seven days apart, the last one landing exactly on the
// reference date. The reference date always names the newest column, so
// two runs with the same reference produce directly comparable reports.
func WeekEndings(reference time.Time, weeks int) ([]time.Time, error) {
	if weeks < 1 {
		return nil, fmt.Errorf("%w: weeks must be at least 1, got %d", schema.ErrConfiguration, weeks)
	}
	endings := make([]time.Time, weeks)
	for i := range endings {
		endings[i] = reference.AddDate(0, 0, -schema.DaysPerWeek*(weeks-1-i))
	}
	return endings, nil
}
