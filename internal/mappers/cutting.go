package mappers

import "github.com/custodia-labs/crc-harvest/internal/core/domain"

// NewCutting creates the mapper for the cutting collection.
func NewCutting(detailBaseURL string) *Mapper {
	return New(domain.CollectionCutting, CuttingFields, detailBaseURL)
}
