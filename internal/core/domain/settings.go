package domain

import (
	"errors"
	"fmt"
	"time"
)

// Defaults for HarvestSettings.
const (
	DefaultArcGISBaseURL     = "https://my.usgs.gov/arcgis/rest/services/crcwc/crcwc/MapServer"
	DefaultCatalogBaseURL    = "https://www.sciencebase.gov/catalog"
	DefaultMacrostratBaseURL = "https://macrostrat.org/api"
	DefaultCRCWebBaseURL     = "https://my.usgs.gov/crcwc"

	// DefaultPageSize is the feature service's hard maximum page size.
	DefaultPageSize = 1000

	DefaultHTTPTimeout = 60 * time.Second
)

// FeatureServiceSettings configures the upstream feature service.
type FeatureServiceSettings struct {
	BaseURL  string
	PageSize int
}

// CatalogSettings configures the destination catalog.
type CatalogSettings struct {
	BaseURL string

	// Token is the session bearer token. Empty means unauthenticated reads only.
	Token string

	// RequestsPerSecond throttles calls to the catalog.
	RequestsPerSecond float64

	// PageSize is the item page size used when building the index.
	PageSize int

	// OwnerName is the data owner contact added to every submitted item.
	OwnerName string

	// StewardName is the data steward added after the owner. Empty omits
	// the steward contact.
	StewardName string

	// StewardPartyID is the steward's catalog party id, 0 when unknown.
	StewardPartyID int
}

// EnrichmentSettings toggles and locates one secondary service.
type EnrichmentSettings struct {
	Enabled bool
	BaseURL string
}

// RetrySettings configures bounded exponential backoff for idempotent reads.
type RetrySettings struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// CacheSettings configures the local fetch cache.
type CacheSettings struct {
	Enabled bool
	TTL     time.Duration
}

// PipelineSettings configures the orchestrator.
type PipelineSettings struct {
	// Sequential must be true. The catalog aborts long-running operations
	// under concurrent load, so records are always submitted one at a time.
	// Changing this requires re-validating the catalog's tolerance first.
	Sequential bool
}

// HarvestSettings is the full application configuration.
type HarvestSettings struct {
	FeatureService FeatureServiceSettings
	Catalog        CatalogSettings
	Macrostrat     EnrichmentSettings
	CRCWeb         EnrichmentSettings
	Retry          RetrySettings
	Cache          CacheSettings
	Pipeline       PipelineSettings
	HTTPTimeout    time.Duration
	Collections    map[CollectionType]Collection
}

// DefaultHarvestSettings returns the production defaults.
func DefaultHarvestSettings() HarvestSettings {
	return HarvestSettings{
		FeatureService: FeatureServiceSettings{
			BaseURL:  DefaultArcGISBaseURL,
			PageSize: DefaultPageSize,
		},
		Catalog: CatalogSettings{
			BaseURL:           DefaultCatalogBaseURL,
			RequestsPerSecond: 1,
			PageSize:          1000,
			OwnerName:         "Core Research Center",
		},
		Macrostrat: EnrichmentSettings{Enabled: true, BaseURL: DefaultMacrostratBaseURL},
		CRCWeb:     EnrichmentSettings{Enabled: true, BaseURL: DefaultCRCWebBaseURL},
		Retry: RetrySettings{
			MaxAttempts:     3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
		},
		Cache: CacheSettings{
			Enabled: false,
			TTL:     24 * time.Hour,
		},
		Pipeline:    PipelineSettings{Sequential: true},
		HTTPTimeout: DefaultHTTPTimeout,
		Collections: DefaultCollections(),
	}
}

// Validate checks the settings for values the pipeline cannot run with.
func (s *HarvestSettings) Validate() error {
	var errs []error
	if !s.Pipeline.Sequential {
		errs = append(errs, errors.New("pipeline.sequential: concurrent submission is not supported"))
	}
	if s.FeatureService.PageSize < 1 || s.FeatureService.PageSize > DefaultPageSize {
		errs = append(errs, fmt.Errorf("arcgis.page_size: must be between 1 and %d", DefaultPageSize))
	}
	if s.FeatureService.BaseURL == "" {
		errs = append(errs, errors.New("arcgis.base_url: required"))
	}
	if s.Catalog.BaseURL == "" {
		errs = append(errs, errors.New("catalog.base_url: required"))
	}
	if s.Catalog.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("catalog.requests_per_second: must be positive"))
	}
	if s.Catalog.StewardPartyID < 0 {
		errs = append(errs, errors.New("catalog.steward_party_id: must not be negative"))
	}
	if s.Catalog.PageSize < 1 {
		errs = append(errs, errors.New("catalog.page_size: must be positive"))
	}
	if s.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry.max_attempts: must be at least 1"))
	}
	if s.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http.timeout_seconds: must be positive"))
	}
	for ct, c := range s.Collections {
		if c.ParentID == "" {
			errs = append(errs, fmt.Errorf("collections.%s.parent_id: required", ct))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// Collection returns the configured destination for a collection type.
func (s *HarvestSettings) Collection(ct CollectionType) (Collection, error) {
	c, ok := s.Collections[ct]
	if !ok {
		return Collection{}, fmt.Errorf("%w: collection %q", ErrUnsupportedType, ct)
	}
	return c, nil
}
