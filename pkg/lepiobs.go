package lepiobs

import (
	"context"

	"github.com/biodivbd/lepiobs/internal/ent/export"
	"github.com/biodivbd/lepiobs/internal/ent/proc"
	"github.com/biodivbd/lepiobs/pkg/config"
	"github.com/biodivbd/lepiobs/pkg/ent/record"
)

// lepiobs is an implementation of Lepiobs interface.
type lepiobs struct {
	cfg config.Config
}

// New creates a new instance of Lepiobs.
func New(
	cfg config.Config,
) Lepiobs {
	res := lepiobs{
		cfg: cfg}
	return &res
}

// Process runs the extraction pipeline over a batch of posts.
func (l *lepiobs) Process(ctx context.Context, p proc.Processor) error {
	return p.Process(ctx)
}

// Export loads enriched observation records into PostgreSQL.
func (l *lepiobs) Export(e export.Exporter, recs []record.Observation) error {
	return e.Export(recs)
}
