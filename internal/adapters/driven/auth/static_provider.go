package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider supplies a session token obtained out of band.
// The token is not refreshed; an expired token surfaces as an
// authentication failure from the catalog.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a fixed bearer token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the token.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("%w: empty catalog token", domain.ErrAuthRequired)
	}
	return p.token, nil
}

// AuthMethod returns AuthMethodToken.
func (p *StaticTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodToken
}

// IsAuthenticated returns true if a token is set.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
