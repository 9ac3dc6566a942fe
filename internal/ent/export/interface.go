package export

import "github.com/biodivbd/lepiobs/pkg/ent/record"

// Exporter is the interface that wraps the Export method.
type Exporter interface {
	// Export loads enriched observation records into PostgreSQL.
	Export(recs []record.Observation) error
}
