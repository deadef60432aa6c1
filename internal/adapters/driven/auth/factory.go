package auth

import (
	"strings"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// NewTokenProvider returns the catalog session for the configured token:
// a bearer session when one is set, an anonymous one otherwise.
func NewTokenProvider(settings domain.CatalogSettings) driven.TokenProvider {
	if strings.TrimSpace(settings.Token) == "" {
		return NewNullTokenProvider()
	}
	return NewStaticTokenProvider(settings.Token)
}
