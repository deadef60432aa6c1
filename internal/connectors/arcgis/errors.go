package arcgis

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// APIError is a non-success response from the map service.
type APIError struct {
	// StatusCode is the HTTP status, or the service error code for errors
	// reported in a 200 response body.
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("arcgis: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsRetryable reports whether a request failing with err may succeed on
// a later attempt.
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
