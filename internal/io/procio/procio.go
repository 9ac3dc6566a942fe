// Package procio implements the batch observation extraction pipeline:
// posts CSV in, enriched observation table out.
package procio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/biodivbd/lepiobs/internal/ent/date"
	"github.com/biodivbd/lepiobs/internal/ent/proc"
	"github.com/biodivbd/lepiobs/internal/ent/taxapi"
	"github.com/biodivbd/lepiobs/internal/ent/txt"
	"github.com/biodivbd/lepiobs/pkg/config"
	"github.com/biodivbd/lepiobs/pkg/ent/record"
	"github.com/dustin/go-humanize"
)

type procio struct {
	cfg      config.Config
	lookup   taxapi.Lookup
	resolver date.Resolver
}

// New returns a new instance of Processor. The lookup is optional; pass
// nil to disable the taxonomy fallback regardless of configuration.
func New(cfg config.Config, lookup taxapi.Lookup) proc.Processor {
	res := procio{
		cfg:    cfg,
		lookup: lookup,
		resolver: date.Resolver{
			MinYear: cfg.MinYear,
			MaxYear: cfg.MaxYear,
		},
	}
	if !cfg.WithTaxonLookup {
		res.lookup = nil
	}
	return &res
}

// Process runs the whole pipeline: read posts, extract dates, locations
// and species, write the enriched table.
func (p *procio) Process(ctx context.Context) error {
	recs, err := p.readPosts()
	if err != nil {
		slog.Error("Cannot read posts", "error", err)
		return err
	}

	recs = p.ProcessDates(recs)

	recs, err = p.ProcessLocations(recs)
	if err != nil {
		slog.Error("Cannot process locations", "error", err)
		return err
	}

	recs, err = p.ProcessSpecies(ctx, recs)
	if err != nil {
		slog.Error("Cannot process species", "error", err)
		return err
	}

	if err = p.writeOutput(recs); err != nil {
		slog.Error("Cannot write output", "error", err)
		return err
	}

	slog.Info("Pipeline finished",
		"rows", humanize.Comma(int64(len(recs))),
		"output", p.cfg.OutputFile)
	return nil
}

// readPosts loads the posts CSV, creating one observation record per
// row with cleaned text. A missing text column is a configuration
// error; a malformed row is skipped.
func (p *procio) readPosts() ([]record.Observation, error) {
	f, err := os.Open(p.cfg.PostsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headerRow, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("posts file %s: %w", p.cfg.PostsFile, err)
	}
	textIdx, dateIdx := -1, -1
	for i, col := range headerRow {
		switch col {
		case p.cfg.TextColumn:
			textIdx = i
		case p.cfg.DateColumn:
			if p.cfg.DateColumn != "" {
				dateIdx = i
			}
		}
	}
	if textIdx == -1 {
		return nil, fmt.Errorf("posts file %s: missing required column %q",
			p.cfg.PostsFile, p.cfg.TextColumn)
	}

	cleanCfg := txt.CleanConfig{
		URLs:        true,
		Emojis:      true,
		Hashtags:    p.cfg.CleanHashtags,
		Punctuation: p.cfg.CleanPunctuation,
	}

	var res []record.Observation
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping bad posts row", "error", err)
			continue
		}
		if textIdx >= len(row) || row[textIdx] == "" {
			continue
		}
		rec := record.New(row[textIdx])
		rec.Text = txt.CleanFull(rec.RawText, cleanCfg)
		if dateIdx != -1 && dateIdx < len(row) {
			rec.Date = row[dateIdx]
		}
		res = append(res, rec)
	}

	slog.Info("Loaded posts",
		"path", p.cfg.PostsFile, "rows", humanize.Comma(int64(len(res))))
	return res, nil
}

// writeOutput writes the enriched table as CSV.
func (p *procio) writeOutput(recs []record.Observation) error {
	f, err := os.Create(p.cfg.OutputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(record.CSVHeader()); err != nil {
		return err
	}
	for i := range recs {
		if err = w.Write(recs[i].Row()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
