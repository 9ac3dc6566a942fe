package lepiobs

import (
	"context"

	"github.com/biodivbd/lepiobs/internal/ent/export"
	"github.com/biodivbd/lepiobs/internal/ent/proc"
	"github.com/biodivbd/lepiobs/pkg/ent/record"
)

// Lepiobs is an interface for extracting structured observations from
// social-media posts and exporting the result.
type Lepiobs interface {
	// Process runs the extraction pipeline over a batch of posts.
	Process(context.Context, proc.Processor) error

	// Export loads enriched observation records into PostgreSQL.
	Export(export.Exporter, []record.Observation) error
}
