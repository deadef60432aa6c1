package auth

import (
	"context"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is an anonymous catalog session. Public items can be
// listed but the catalog rejects create calls.
type NullTokenProvider struct{}

// NewNullTokenProvider creates an anonymous token provider.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken returns an empty string since no authentication is sent.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// AuthMethod returns AuthMethodNone.
func (p *NullTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodNone
}

// IsAuthenticated always returns false.
func (p *NullTokenProvider) IsAuthenticated() bool {
	return false
}
