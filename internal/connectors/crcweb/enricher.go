package crcweb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/retry"
)

const (
	// Name identifies this enrichment source.
	Name = "crcweb"

	// DefaultRequestsPerSecond keeps scraping polite.
	DefaultRequestsPerSecond = 2.0

	// maxPageSize bounds how much of a report page is read.
	maxPageSize = 8 << 20
)

// Ensure Enricher implements the interface.
var _ driven.Enricher = (*Enricher)(nil)

// APIError is a non-success response from the web site.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crcweb: HTTP %d (URL: %s)", e.StatusCode, e.URL)
}

// Enricher attaches report page contents to records.
type Enricher struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
	limiter    *rate.Limiter
}

// New creates an enricher for the site rooted at baseURL.
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

// Enrich scrapes the record's report page, sets its detail and adds
// download links for analysis files and photos.
func (e *Enricher) Enrich(ctx context.Context, rec *domain.Record) error {
	pageURL := domain.DetailPageURL(e.baseURL, rec.Collection, rec.ID)

	var page *domain.DetailPage
	err := e.policy.Do(ctx, "crcweb report "+rec.ID, func() error {
		p, err := e.fetch(ctx, pageURL)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests {
				return retry.Permanent(err)
			}
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: no report page for record %s", domain.ErrNoEnrichmentData, rec.ID)
		}
		return fmt.Errorf("%w: %w", domain.ErrEnrichmentFailed, err)
	}

	if page.IsEmpty() {
		return fmt.Errorf("%w: report page %s has no recognised content", domain.ErrNoEnrichmentData, pageURL)
	}

	rec.Detail = page
	rec.AddWebLinks(downloadLinks(page)...)
	return nil
}

func (e *Enricher) fetch(ctx context.Context, pageURL string) (*domain.DetailPage, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	return Parse(io.LimitReader(resp.Body, maxPageSize), pageURL)
}

// downloadLinks builds the web links for a page's documents and photos.
func downloadLinks(page *domain.DetailPage) []domain.WebLink {
	links := make([]domain.WebLink, 0, len(page.Documents)+len(page.Photos))
	for _, doc := range page.Documents {
		links = append(links, domain.WebLink{
			Type:              "download",
			TypeLabel:         "Download",
			URI:               doc,
			Rel:               "related",
			Title:             "Core Research Center Analysis File " + baseName(doc),
			ItemWebLinkTypeID: domain.WebLinkTypeIDDownload,
		})
	}
	for _, photo := range page.Photos {
		links = append(links, domain.WebLink{
			Type:              "download",
			TypeLabel:         "Photo",
			URI:               photo,
			Rel:               "related",
			Title:             "Core Research Center Photo " + baseName(photo),
			ItemWebLinkTypeID: domain.WebLinkTypeIDDownload,
		})
	}
	return links
}

// baseName is the last path segment of a link.
func baseName(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	return path.Base(link)
}
