package core

import (
	"testing"

	"github.com/tmorling/headcount/schema"
)

// FuzzParseDeltaLine fuzzes the delta line parser with arbitrary input lines.
func FuzzParseDeltaLine(f *testing.F) {
	seeds := []string{
		"course_1\t2013-01-01\t10",
		"course_☃\t2013-04-02\t-3",
		"course_1\t2013-01-01",
		"course_1\t01/01/2013\t10",
		"\t2013-01-01\t10",
		"Total Enrollment\t2013-01-01\t10",
		"a\tb\tc\td",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, line string) {
		rec, err := parseDeltaLine(line)
		if err != nil {
			return
		}
		// Accepted lines must produce a well-formed record
		if rec.EntityID == "" {
			t.Errorf("accepted line %q with empty entity id", line)
		}
		if rec.EntityID == schema.TotalRowName {
			t.Errorf("accepted line %q with reserved entity id", line)
		}
		if rec.Date.IsZero() {
			t.Errorf("accepted line %q with zero date", line)
		}
	})
}
