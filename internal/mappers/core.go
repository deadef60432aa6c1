package mappers

import "github.com/custodia-labs/crc-harvest/internal/core/domain"

// NewCore creates the mapper for the core collection.
func NewCore(detailBaseURL string) *Mapper {
	return New(domain.CollectionCore, CoreFields, detailBaseURL)
}
