package arcgis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

const (
	// MaxPageSize is the map service's hard limit on features per page.
	MaxPageSize = domain.DefaultPageSize

	// DefaultRequestsPerSecond keeps paging polite towards the map service.
	DefaultRequestsPerSecond = 4.0

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4096
)

// Client queries the layers of one ArcGIS MapServer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the map service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPTimeout
	}
	return NewClientWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
}

// SetRateLimit changes the request rate. A non-positive rate disables throttling.
func (c *Client) SetRateLimit(requestsPerSecond float64) {
	if requestsPerSecond <= 0 {
		c.limiter.SetLimit(rate.Inf)
		return
	}
	c.limiter.SetLimit(rate.Limit(requestsPerSecond))
}

// QueryURL builds the GeoJSON query URL of one page.
func (c *Client) QueryURL(layer, offset, count int) string {
	q := url.Values{}
	q.Set("where", "0=0")
	q.Set("outFields", "*")
	q.Set("returnGeometry", "true")
	q.Set("resultOffset", strconv.Itoa(offset))
	q.Set("resultRecordCount", strconv.Itoa(count))
	q.Set("f", "geojson")
	return fmt.Sprintf("%s/%d/query?%s", c.baseURL, layer, q.Encode())
}

// QueryPage fetches one page of a collection's layer as raw records.
func (c *Client) QueryPage(ctx context.Context, collection domain.Collection, offset, count int) ([]domain.RawRecord, error) {
	layer := collection.Layer
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.QueryURL(layer, offset, count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query layer %d: %w", layer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        reqURL,
		}
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode layer %d page at offset %d: %w: %w", layer, offset, domain.ErrMalformedResponse, err)
	}
	if fc.Error != nil {
		msg := fc.Error.Message
		if len(fc.Error.Details) > 0 {
			msg += ": " + strings.Join(fc.Error.Details, "; ")
		}
		return nil, &APIError{StatusCode: fc.Error.Code, Message: msg, URL: reqURL}
	}

	records := make([]domain.RawRecord, 0, len(fc.Features))
	for _, f := range fc.Features {
		records = append(records, f.toRawRecord(collection.Type))
	}
	return records, nil
}
