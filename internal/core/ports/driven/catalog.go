package driven

import (
	"context"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// CatalogItem is the subset of a stored catalog item needed for reconciliation.
type CatalogItem struct {
	ID          string
	Title       string
	Identifiers []domain.Identifier
}

// ItemPage is one page of items under a parent collection.
type ItemPage struct {
	Items []CatalogItem

	// Next is the continuation handle; empty when this is the last page.
	Next string
}

// CatalogReader lists items stored under a destination collection.
type CatalogReader interface {
	// ListItems returns one page of items under parentID. Pass an empty
	// continuation for the first page and the previous page's Next after.
	ListItems(ctx context.Context, parentID, continuation string) (*ItemPage, error)
}

// CatalogSubmitter stores one normalised record as a catalog item.
type CatalogSubmitter interface {
	// Submit performs exactly one create call and never batches.
	// The result distinguishes an explicit failure from an unknown outcome.
	Submit(ctx context.Context, parentID string, record *domain.Record) domain.SubmissionResult
}
