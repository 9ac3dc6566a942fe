package taxapi

import "context"

// Lookup queries an external taxonomy service by vernacular name. It is
// best effort: implementations may be slow or unavailable, and callers
// treat failures as an empty candidate list.
type Lookup interface {
	// TaxaByName returns candidate scientific names for a common name,
	// ranked by relevance.
	TaxaByName(ctx context.Context, commonName string) ([]string, error)
}
