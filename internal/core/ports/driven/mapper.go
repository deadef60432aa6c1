package driven

import "github.com/custodia-labs/crc-harvest/internal/core/domain"

// SchemaMapper converts raw records of one collection type into normalised
// records. Each collection type has exactly one implementation supplying
// its own field table; adding a source schema means adding a mapper.
type SchemaMapper interface {
	// Collection returns the collection type this mapper handles.
	Collection() domain.CollectionType

	// Map converts one raw record. The error matches domain.ErrMappingFailed
	// when the record lacks its primary identifier.
	Map(raw domain.RawRecord) (*domain.Record, error)
}

// MapperRegistry selects the mapper for a collection type.
type MapperRegistry interface {
	// Register adds a mapper, replacing any mapper for the same collection.
	Register(m SchemaMapper)

	// Get returns the mapper for a collection type.
	// Returns domain.ErrUnsupportedType when none is registered.
	Get(collection domain.CollectionType) (SchemaMapper, error)
}
