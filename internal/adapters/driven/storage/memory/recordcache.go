package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// Ensure RecordCache implements the interface.
var _ driven.RecordCache = (*RecordCache)(nil)

// RecordCache is an in-memory implementation of driven.RecordCache.
type RecordCache struct {
	mu      sync.RWMutex
	entries map[domain.CollectionType]driven.CachedRecords
	now     func() time.Time
}

// NewRecordCache creates a new in-memory record cache.
func NewRecordCache() *RecordCache {
	return &RecordCache{
		entries: make(map[domain.CollectionType]driven.CachedRecords),
		now:     time.Now,
	}
}

// Get returns the cached records of a collection.
func (c *RecordCache) Get(_ context.Context, collection domain.CollectionType) (*driven.CachedRecords, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := driven.CachedRecords{
		Records:  append([]domain.RawRecord(nil), entry.Records...),
		StoredAt: entry.StoredAt,
	}
	return &out, nil
}

// Put replaces the cached records of a collection.
func (c *RecordCache) Put(_ context.Context, collection domain.CollectionType, records []domain.RawRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[collection] = driven.CachedRecords{
		Records:  append([]domain.RawRecord(nil), records...),
		StoredAt: c.now(),
	}
	return nil
}

// Clear removes the cached records of a collection.
func (c *RecordCache) Clear(_ context.Context, collection domain.CollectionType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, collection)
	return nil
}

// SetClock replaces the time source. Useful for testing expiry.
func (c *RecordCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
