package sciencebase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// APIError is a non-success response from the catalog.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sciencebase: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is maps status codes to domain sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case domain.ErrAuthRequired:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// IsRetryable reports whether a read failing with err may succeed later.
func IsRetryable(err error) bool {
	if errors.Is(err, domain.ErrMalformedResponse) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}

// isAmbiguousStatus reports whether a create answered with status may still
// have been applied. Gateways answer 502/504 while the backend keeps working.
func isAmbiguousStatus(status int) bool {
	return status == http.StatusBadGateway || status == http.StatusGatewayTimeout
}
