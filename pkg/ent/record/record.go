package record

import (
	"fmt"
	"strconv"

	"github.com/gnames/gnuuid"
)

// Observation is a single social-media post enriched by the extraction
// pipeline. A record is created from the raw post text and progressively
// filled by the date, location and species stages; empty string fields
// mean the corresponding matcher found nothing.
type Observation struct {
	// ID is a UUID v5 derived from the raw post text.
	ID string

	// RawText is the post text as it came from the source file.
	RawText string

	// Text is the cleaned and normalized post text. The date stage may
	// remove the matched date substring from it.
	Text string

	// Date is the extracted observation date. It keeps the shape of the
	// matched substring ("19/07/2025", "2019", "2025-07-19").
	Date string

	// Location is the canonical gazetteer name of the matched place.
	Location string

	// Lat and Lon are the coordinates of the matched place. They are
	// meaningful only when HasCoords is true.
	Lat float64
	Lon float64

	// HasCoords is true after a coordinate pair was parsed successfully.
	HasCoords bool

	// Genus, Species and CommonName are the resolved identification
	// fields, all lowercased except CommonName which keeps the case of
	// the reference table.
	Genus      string
	Species    string
	CommonName string
}

// New creates an Observation from raw post text.
func New(rawText string) Observation {
	return Observation{
		ID:      gnuuid.New(rawText).String(),
		RawText: rawText,
	}
}

// CSVHeader returns the column names used by CSV output of the pipeline.
func CSVHeader() []string {
	return []string{
		"id", "post_text", "extracted_date", "location", "lat", "lon",
		"genus", "species", "common_name",
	}
}

// Row converts an Observation to a CSV row matching CSVHeader.
func (o Observation) Row() []string {
	var lat, lon string
	if o.HasCoords {
		lat = strconv.FormatFloat(o.Lat, 'f', -1, 64)
		lon = strconv.FormatFloat(o.Lon, 'f', -1, 64)
	}
	return []string{
		o.ID, o.Text, o.Date, o.Location, lat, lon,
		o.Genus, o.Species, o.CommonName,
	}
}

// FromRow restores an Observation from a CSV row written by Row.
func FromRow(row []string) (Observation, error) {
	var res Observation
	if len(row) != len(CSVHeader()) {
		return res, fmt.Errorf("record: bad number of fields %d", len(row))
	}
	res = Observation{
		ID: row[0], Text: row[1], Date: row[2], Location: row[3],
		Genus: row[6], Species: row[7], CommonName: row[8],
	}
	if row[4] != "" && row[5] != "" {
		lat, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return res, err
		}
		lon, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return res, err
		}
		res.Lat, res.Lon, res.HasCoords = lat, lon, true
	}
	return res, nil
}
