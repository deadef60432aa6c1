package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/logger"
)

// Ensure CachedFetcher implements the interface.
var _ driven.SourceFetcher = (*CachedFetcher)(nil)

// CachedFetcher serves recent complete fetches from a local cache.
// Cache failures are logged and fall through to the inner fetcher.
type CachedFetcher struct {
	inner driven.SourceFetcher
	cache driven.RecordCache
	ttl   time.Duration
	now   func() time.Time
}

// NewCachedFetcher wraps inner with a cache whose entries expire after ttl.
func NewCachedFetcher(inner driven.SourceFetcher, cache driven.RecordCache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: cache, ttl: ttl, now: time.Now}
}

// FetchAll returns a fresh cache entry or fetches and caches the collection.
func (f *CachedFetcher) FetchAll(ctx context.Context, collection domain.Collection, pageSize int) ([]domain.RawRecord, error) {
	entry, err := f.cache.Get(ctx, collection.Type)
	switch {
	case err == nil && f.now().Sub(entry.StoredAt) < f.ttl:
		logger.Info("cache: using %d %s records stored %s", len(entry.Records), collection.Type,
			entry.StoredAt.Format(time.RFC3339))
		return entry.Records, nil
	case err == nil:
		logger.Debug("cache: %s entry expired", collection.Type)
	case !errors.Is(err, domain.ErrNotFound):
		logger.Warn("cache: read %s failed, fetching: %v", collection.Type, err)
	}

	records, err := f.inner.FetchAll(ctx, collection, pageSize)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Put(ctx, collection.Type, records); err != nil {
		logger.Warn("cache: write %s failed: %v", collection.Type, err)
	}
	return records, nil
}
