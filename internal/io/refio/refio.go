// Package refio loads and merges the reference species tables used by
// the taxonomic matcher.
package refio

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/biodivbd/lepiobs/internal/ent/taxon"
	"github.com/gnames/gnparser"
)

// Required columns of the main reference table. Their absence is a
// configuration error, not a row-level one.
var requiredCols = []string{"Genus", "Species", "Common_Name"}

// ReadTable loads the main reference species table. The optional
// Scientific_Name column is taken when present.
func ReadTable(path string) ([]taxon.Record, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	for _, col := range requiredCols {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf(
				"reference table %s: missing required column %q", path, col)
		}
	}

	res := make([]taxon.Record, 0, len(rows))
	for _, row := range rows {
		rec := taxon.Record{
			Genus:      field(row, header, "Genus"),
			Species:    field(row, header, "Species"),
			CommonName: field(row, header, "Common_Name"),
		}
		if _, ok := header["Scientific_Name"]; ok {
			rec.ScientificName = field(row, header, "Scientific_Name")
		}
		res = append(res, rec)
	}
	slog.Info("Loaded reference table", "path", path, "rows", len(res))
	return res, nil
}

// ReadPhotoGuide loads the photographic-guide supplement. Its rows only
// carry scientific and common names, so genus and species are parsed
// out of the scientific name; rows where parsing fails are skipped.
func ReadPhotoGuide(
	path string,
	gnp gnparser.GNparser,
) ([]taxon.Record, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	for _, col := range []string{"Scientific Name", "Common Name"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf(
				"photographic guide %s: missing required column %q", path, col)
		}
	}

	var res []taxon.Record
	for _, row := range rows {
		sciName := field(row, header, "Scientific Name")
		genus, species := taxon.ParseBinomial(gnp, sciName)
		if genus == "" || species == "" {
			continue
		}
		res = append(res, taxon.Record{
			Genus:          genus,
			Species:        species,
			CommonName:     field(row, header, "Common Name"),
			ScientificName: sciName,
		})
	}
	slog.Info("Loaded photographic guide", "path", path, "rows", len(res))
	return res, nil
}

// RecordsFromAdditions converts a manual additions map of common name to
// scientific name into reference records. Additions that do not parse
// to a binomial are dropped. The result is sorted by common name to keep
// batch runs deterministic.
func RecordsFromAdditions(
	additions map[string]string,
	gnp gnparser.GNparser,
) []taxon.Record {
	commons := make([]string, 0, len(additions))
	for common := range additions {
		commons = append(commons, common)
	}
	sort.Strings(commons)

	var res []taxon.Record
	for _, common := range commons {
		sciName := additions[common]
		genus, species := taxon.ParseBinomial(gnp, sciName)
		if genus == "" || species == "" {
			slog.Warn("Skipping manual addition", "common_name", common,
				"scientific_name", sciName)
			continue
		}
		res = append(res, taxon.Record{
			Genus:          genus,
			Species:        species,
			CommonName:     common,
			ScientificName: sciName,
		})
	}
	return res
}

// Merge concatenates record sets; taxon.NewTable deduplicates them.
func Merge(sets ...[]taxon.Record) []taxon.Record {
	var res []taxon.Record
	for _, set := range sets {
		res = append(res, set...)
	}
	return res
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("Cannot open csv file", "error", err, "path", path)
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headerRow, err := r.Read()
	if err != nil {
		slog.Error("Cannot read csv header", "error", err, "path", path)
		return nil, nil, err
	}
	header := make(map[string]int, len(headerRow))
	for i, col := range headerRow {
		header[col] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping bad csv row", "error", err, "path", path)
			continue
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func field(row []string, header map[string]int, col string) string {
	idx, ok := header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
