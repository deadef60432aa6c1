package sciencebase

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/retry"
)

var testPolicy = retry.Policy{
	MaxAttempts:     3,
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
}

// stubTokens is a fixed-token provider.
type stubTokens struct {
	token string
	err   error
}

func (s stubTokens) GetToken(context.Context) (string, error) { return s.token, s.err }

func (s stubTokens) AuthMethod() domain.AuthMethod {
	if s.token == "" {
		return domain.AuthMethodNone
	}
	return domain.AuthMethodToken
}

func (s stubTokens) IsAuthenticated() bool { return s.token != "" || s.err != nil }

var errTokenUnavailable = errors.New("token unavailable")

func newTestClient(baseURL, token string) *Client {
	return NewClient(baseURL, stubTokens{token: token}, time.Second, 0)
}
