package mappers

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.MapperRegistry = (*Registry)(nil)

// Registry maps collection types to their mappers.
type Registry struct {
	mu      sync.RWMutex
	mappers map[domain.CollectionType]driven.SchemaMapper
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mappers: make(map[domain.CollectionType]driven.SchemaMapper),
	}
}

// DefaultRegistry returns a registry holding the core and cutting mappers.
func DefaultRegistry(detailBaseURL string) *Registry {
	r := NewRegistry()
	r.Register(NewCore(detailBaseURL))
	r.Register(NewCutting(detailBaseURL))
	return r
}

// Register adds a mapper, replacing any mapper for the same collection.
func (r *Registry) Register(m driven.SchemaMapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers[m.Collection()] = m
}

// Get returns the mapper for a collection type.
func (r *Registry) Get(collection domain.CollectionType) (driven.SchemaMapper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mappers[collection]
	if !ok {
		return nil, fmt.Errorf("%w: no mapper for collection %q", domain.ErrUnsupportedType, collection)
	}
	return m, nil
}
