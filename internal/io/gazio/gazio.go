// Package gazio reads GeoNames-style gazetteer files from disk.
package gazio

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/biodivbd/lepiobs/internal/ent/gazetteer"
)

// GeoNames dump columns, positionally indexed, no header row.
const (
	nameF = 2
	altF  = 3
	latF  = 4
	lonF  = 5
)

// Read loads gazetteer entries from a tab-separated GeoNames file.
// Malformed rows are skipped, they never abort the load.
func Read(path string) ([]gazetteer.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("Cannot open gazetteer file", "error", err, "path", path)
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var res []gazetteer.Entry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping bad gazetteer row", "error", err)
			continue
		}
		if len(row) <= lonF {
			continue
		}
		name := strings.TrimSpace(row[nameF])
		if name == "" {
			continue
		}
		res = append(res, gazetteer.Entry{
			Name:     name,
			AltNames: splitAltNames(row[altF]),
			Coords:   strings.TrimSpace(row[latF]) + ", " + strings.TrimSpace(row[lonF]),
		})
	}
	slog.Info("Loaded gazetteer", "path", path, "entries", len(res))
	return res, nil
}

func splitAltNames(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
