package driven

import (
	"context"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// Enricher augments a record with facts from one secondary service.
//
// Enrichment is best effort: implementations only append tags and web links
// and set their own payload field; they never touch Properties or any field
// set by the SchemaMapper. Returning domain.ErrNoEnrichmentData means the
// service answered but had nothing for this record.
type Enricher interface {
	// Name identifies the enrichment source in logs and run reports.
	Name() string

	// Enrich augments the record in place.
	Enrich(ctx context.Context, record *domain.Record) error
}
