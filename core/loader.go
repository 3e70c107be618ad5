package core

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// InputData carries the parsed input streams of one report run.
type InputData struct {
	Events  []schema.DeltaRecord
	Offsets []schema.DeltaRecord
	History *schema.ReportMatrix // nil when no history file is configured
}

// AllRecords returns events and offsets as a single stream. Offsets are
// ordinary deltas that seed counts accumulated before the events stream
// begins, so the engine treats both kinds identically.
func (d *InputData) AllRecords() []schema.DeltaRecord {
	all := make([]schema.DeltaRecord, 0, len(d.Events)+len(d.Offsets))
	all = append(all, d.Events...)
	all = append(all, d.Offsets...)
	return all
}

// LoadInputs reads the configured input files concurrently. The events
// file is required; offsets and history are optional and stay empty when
// not configured.
func LoadInputs(ctx context.Context, cfg *contract.Config) (*InputData, error) {
	data := &InputData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := parseDeltaFile(gctx, cfg.EventsPath, "events")
		if err != nil {
			return err
		}
		data.Events = recs
		return nil
	})
	if cfg.OffsetsPath != "" {
		g.Go(func() error {
			recs, err := parseDeltaFile(gctx, cfg.OffsetsPath, "offsets")
			if err != nil {
				return err
			}
			data.Offsets = recs
			return nil
		})
	}
	if cfg.HistoryPath != "" {
		g.Go(func() error {
			m, err := parseHistoryFile(gctx, cfg.HistoryPath)
			if err != nil {
				return err
			}
			data.History = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("events", len(data.Events)).
		Int("offsets", len(data.Offsets)).
		Bool("history", data.History != nil).
		Msg("inputs loaded")
	return data, nil
}

// parseDeltaFile opens and parses one tab-separated change stream.
func parseDeltaFile(ctx context.Context, path, role string) ([]schema.DeltaRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s file: %w", role, err)
	}
	defer func() { _ = f.Close() }()
	return ParseDeltas(f, role)
}

// parseHistoryFile opens and parses a historical report matrix.
func parseHistoryFile(ctx context.Context, path string) (*schema.ReportMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer func() { _ = f.Close() }()
	m, err := schema.ParseMatrixCSV(f)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return m, nil
}
