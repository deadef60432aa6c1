package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crc-harvest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

func TestCacheService_Clear(t *testing.T) {
	cache := memory.NewRecordCache()
	require.NoError(t, cache.Put(t.Context(), domain.CollectionCore, []domain.RawRecord{coreRaw("A1", nil), coreRaw("A2", nil)}))
	require.NoError(t, cache.Put(t.Context(), domain.CollectionCutting, []domain.RawRecord{coreRaw("B1", nil)}))
	service := NewCacheService(cache)

	n, err := service.Clear(t.Context(), domain.CollectionCore)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = cache.Get(t.Context(), domain.CollectionCore)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	kept, err := cache.Get(t.Context(), domain.CollectionCutting)
	require.NoError(t, err)
	assert.Len(t, kept.Records, 1)
}

func TestCacheService_ClearEmpty(t *testing.T) {
	service := NewCacheService(memory.NewRecordCache())

	n, err := service.Clear(t.Context(), domain.CollectionCutting)

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCacheService_ClearUnsupportedCollection(t *testing.T) {
	service := NewCacheService(memory.NewRecordCache())

	_, err := service.Clear(t.Context(), "slab")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestCacheService_ClearForcesRefetch(t *testing.T) {
	cache := memory.NewRecordCache()
	inner := &mockFetcher{records: []domain.RawRecord{coreRaw("A1", nil)}}
	fetcher := NewCachedFetcher(inner, cache, time.Hour)
	coll := testSettings().Collections[domain.CollectionCore]

	_, err := fetcher.FetchAll(t.Context(), coll, 100)
	require.NoError(t, err)
	_, err = fetcher.FetchAll(t.Context(), coll, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	_, err = NewCacheService(cache).Clear(t.Context(), domain.CollectionCore)
	require.NoError(t, err)

	_, err = fetcher.FetchAll(t.Context(), coll, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
