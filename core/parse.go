package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tmorling/headcount/schema"
)

// ParseDeltas reads a tab-separated change stream: one entity id, ISO date
// and signed delta per line. Blank lines are skipped. Any other deviation
// fails the whole run, since a silently dropped line would make every
// cumulative total after it wrong. role names the stream in errors,
// e.g. "events" or "offsets".
func ParseDeltas(r io.Reader, role string) ([]schema.DeltaRecord, error) {
	var records []schema.DeltaRecord

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseDeltaLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %s", schema.ErrParse, role, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", role, err)
	}

	return records, nil
}

// parseDeltaLine parses one tab-separated change line into a record.
func parseDeltaLine(line string) (schema.DeltaRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return schema.DeltaRecord{}, fmt.Errorf("expected 3 tab-separated fields, got %d", len(fields))
	}

	entityID := fields[0]
	if entityID == "" {
		return schema.DeltaRecord{}, fmt.Errorf("empty entity id")
	}
	if entityID == schema.TotalRowName {
		return schema.DeltaRecord{}, fmt.Errorf("entity id %q is reserved for the aggregate row", schema.TotalRowName)
	}

	date, err := schema.ParseDate(fields[1])
	if err != nil {
		return schema.DeltaRecord{}, err
	}

	delta, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return schema.DeltaRecord{}, fmt.Errorf("invalid delta %q", fields[2])
	}

	return schema.DeltaRecord{EntityID: entityID, Date: date, Delta: delta}, nil
}
