package macrostrat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/retry"
)

const (
	// Name identifies this enrichment source.
	Name = "macrostrat"

	// DefaultRequestsPerSecond keeps the public API load low.
	DefaultRequestsPerSecond = 5.0
)

// Ensure Enricher implements the interface.
var _ driven.Enricher = (*Enricher)(nil)

// APIError is a non-success response from the point API.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("macrostrat: API error %d (URL: %s)", e.StatusCode, e.URL)
}

// Enricher looks up the geologic unit at a record's location.
type Enricher struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
	limiter    *rate.Limiter
}

// New creates an enricher for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, policy retry.Policy) *Enricher {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPTimeout
	}
	return &Enricher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		policy:     policy,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
}

// SetRateLimit changes the request rate. A non-positive rate disables throttling.
func (e *Enricher) SetRateLimit(requestsPerSecond float64) {
	if requestsPerSecond <= 0 {
		e.limiter.SetLimit(rate.Inf)
		return
	}
	e.limiter.SetLimit(rate.Limit(requestsPerSecond))
}

// Name returns the enrichment source name.
func (e *Enricher) Name() string {
	return Name
}

// Enrich sets the record's geologic context and adds its tags.
func (e *Enricher) Enrich(ctx context.Context, rec *domain.Record) error {
	if rec.Location == nil {
		return fmt.Errorf("%w: record %s has no location", domain.ErrNoEnrichmentData, rec.ID)
	}

	reqURL := e.pointURL(*rec.Location)
	var data map[string]any
	err := e.policy.Do(ctx, "macrostrat point "+rec.ID, func() error {
		d, err := e.fetch(ctx, reqURL)
		if err != nil {
			if !isRetryable(err) {
				return retry.Permanent(err)
			}
			return err
		}
		data = d
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEnrichmentFailed, err)
	}

	geo := parseContext(data)
	if geo == nil {
		return fmt.Errorf("%w: no mapped unit at %s", domain.ErrNoEnrichmentData, reqURL)
	}

	rec.Geology = geo
	rec.AddTags(geo.Tags()...)
	return nil
}

// isRetryable reports whether a lookup failing with err may succeed later.
func isRetryable(err error) bool {
	if errors.Is(err, domain.ErrMalformedResponse) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}

func (e *Enricher) pointURL(p domain.Point) string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	return e.baseURL + "/mobile/point?" + q.Encode()
}

// pointResponse is the API envelope.
type pointResponse struct {
	Success *struct {
		Data map[string]any `json:"data"`
	} `json:"success"`
}

// fetch returns the response's data object, nil when absent.
func (e *Enricher) fetch(ctx context.Context, reqURL string) (map[string]any, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	var pr pointResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode response: %w: %w", domain.ErrMalformedResponse, err)
	}
	if pr.Success == nil {
		return nil, nil
	}
	return pr.Success.Data, nil
}

// parseContext extracts the facts used for tagging. It returns nil when
// the data names no unit.
func parseContext(data map[string]any) *domain.GeologicContext {
	if len(data) == 0 {
		return nil
	}

	geo := &domain.GeologicContext{Facts: data}
	geo.Name, _ = data["name"].(string)
	geo.Age, _ = data["age"].(string)
	if rocks, ok := data["rocktype"].([]any); ok {
		for _, r := range rocks {
			if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
				geo.RockTypes = append(geo.RockTypes, s)
			}
		}
	}

	if geo.Name == "" && geo.Age == "" && len(geo.RockTypes) == 0 {
		return nil
	}
	return geo
}
