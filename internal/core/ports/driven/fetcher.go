package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// SourceFetcher retrieves every record of a collection from the upstream
// feature service.
type SourceFetcher interface {
	// FetchAll requests pages of pageSize records at increasing offsets
	// until an empty page is returned, and returns all records in upstream
	// order. If any page fails, no partial result is returned. Every error
	// matches domain.ErrFetchFailed; a pageSize outside the service limit
	// also matches domain.ErrInvalidInput.
	FetchAll(ctx context.Context, collection domain.Collection, pageSize int) ([]domain.RawRecord, error)
}

// RecordCache stores the last complete fetch of a collection.
// It is an optional adapter behind SourceFetcher and never authoritative.
type RecordCache interface {
	// Get returns the cached records and when they were stored.
	// Returns domain.ErrNotFound when nothing is cached.
	Get(ctx context.Context, collection domain.CollectionType) (*CachedRecords, error)

	// Put replaces the cached records for a collection.
	Put(ctx context.Context, collection domain.CollectionType, records []domain.RawRecord) error

	// Clear removes the cached records for a collection.
	Clear(ctx context.Context, collection domain.CollectionType) error
}

// CachedRecords is a cache entry.
type CachedRecords struct {
	Records  []domain.RawRecord
	StoredAt time.Time
}
