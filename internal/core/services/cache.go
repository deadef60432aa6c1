package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driving"
)

// Ensure CacheService implements the interface.
var _ driving.FetchCache = (*CacheService)(nil)

// CacheService exposes the record cache to the command line so a stale
// fetch can be dropped before its TTL runs out.
type CacheService struct {
	cache driven.RecordCache
}

// NewCacheService creates a cache service over cache.
func NewCacheService(cache driven.RecordCache) *CacheService {
	return &CacheService{cache: cache}
}

// Clear drops a collection's cached records.
func (s *CacheService) Clear(ctx context.Context, ct domain.CollectionType) (int, error) {
	if !ct.IsValid() {
		return 0, fmt.Errorf("%w: collection %q", domain.ErrUnsupportedType, ct)
	}

	held := 0
	entry, err := s.cache.Get(ctx, ct)
	switch {
	case err == nil:
		held = len(entry.Records)
	case !errors.Is(err, domain.ErrNotFound):
		return 0, fmt.Errorf("read cache: %w", err)
	}

	if err := s.cache.Clear(ctx, ct); err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return held, nil
}
