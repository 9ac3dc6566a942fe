package proc

import (
	"context"

	"github.com/biodivbd/lepiobs/pkg/ent/record"
)

// Processor runs the observation extraction pipeline.
type Processor interface {
	// Process reads the posts file, runs all extraction stages and
	// writes the enriched output table.
	Process(ctx context.Context) error

	// ProcessDates extracts observation dates; rows without a valid
	// date are dropped.
	ProcessDates(recs []record.Observation) []record.Observation

	// ProcessLocations resolves place names and coordinates; rows
	// without parsable coordinates are dropped.
	ProcessLocations(recs []record.Observation) ([]record.Observation, error)

	// ProcessSpecies resolves genus, species and common name; rows are
	// kept even when only partially identified.
	ProcessSpecies(ctx context.Context, recs []record.Observation) ([]record.Observation, error)
}
