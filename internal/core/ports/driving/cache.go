package driving

import (
	"context"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// FetchCache manages the local copy of fetched feature service records.
type FetchCache interface {
	// Clear drops the cached records of a collection and returns how many
	// were held. Clearing an empty cache is not an error.
	Clear(ctx context.Context, collection domain.CollectionType) (int, error)
}
