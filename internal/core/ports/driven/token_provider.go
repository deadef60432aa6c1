package driven

import (
	"context"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// TokenProvider supplies the catalog session's credentials.
// It is passed explicitly into every catalog adapter; there is no
// process-wide login state.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// Returns empty string for unauthenticated sessions.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method (token, none).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if credentials are available.
	IsAuthenticated() bool
}
