package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// TokenEnvVar overrides catalog.token when set.
//
//nolint:gosec // G101: environment variable name, not a credential.
const TokenEnvVar = "CRC_HARVEST_CATALOG_TOKEN"

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyArcGISBaseURL      = "arcgis.base_url"
	keyArcGISPageSize     = "arcgis.page_size"
	keyCatalogBaseURL     = "catalog.base_url"
	keyCatalogToken       = "catalog.token"
	keyCatalogRPS         = "catalog.requests_per_second"
	keyCatalogPageSize    = "catalog.page_size"
	keyCatalogOwnerName   = "catalog.owner_name"
	keyCatalogSteward     = "catalog.steward_name"
	keyCatalogStewardID   = "catalog.steward_party_id"
	keyMacrostratBaseURL  = "macrostrat.base_url"
	keyMacrostratEnabled  = "macrostrat.enabled"
	keyCRCWebBaseURL      = "crcweb.base_url"
	keyCRCWebEnabled      = "crcweb.enabled"
	keyHTTPTimeoutSeconds = "http.timeout_seconds"
	keyRetryMaxAttempts   = "retry.max_attempts"
	keyRetryInitialMS     = "retry.initial_interval_ms"
	keyRetryMaxMS         = "retry.max_interval_ms"
	keyCacheEnabled       = "cache.enabled"
	keyCacheTTLHours      = "cache.ttl_hours"
	keyPipelineSequential = "pipeline.sequential"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
)

// knownKeys maps every settable key to its value kind.
var knownKeys = func() map[string]keyKind {
	keys := map[string]keyKind{
		keyArcGISBaseURL:      kindString,
		keyArcGISPageSize:     kindInt,
		keyCatalogBaseURL:     kindString,
		keyCatalogToken:       kindString,
		keyCatalogRPS:         kindFloat,
		keyCatalogPageSize:    kindInt,
		keyCatalogOwnerName:   kindString,
		keyCatalogSteward:     kindString,
		keyCatalogStewardID:   kindInt,
		keyMacrostratBaseURL:  kindString,
		keyMacrostratEnabled:  kindBool,
		keyCRCWebBaseURL:      kindString,
		keyCRCWebEnabled:      kindBool,
		keyHTTPTimeoutSeconds: kindInt,
		keyRetryMaxAttempts:   kindInt,
		keyRetryInitialMS:     kindInt,
		keyRetryMaxMS:         kindInt,
		keyCacheEnabled:       kindBool,
		keyCacheTTLHours:      kindInt,
		keyPipelineSequential: kindBool,
	}
	for _, ct := range domain.AllCollections() {
		keys[parentIDKey(ct)] = kindString
	}
	return keys
}()

func parentIDKey(ct domain.CollectionType) string {
	return "collections." + string(ct) + ".parent_id"
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings with defaults applied and validates them.
func (s *SettingsService) Get() (*domain.HarvestSettings, error) {
	d := domain.DefaultHarvestSettings()

	settings := &domain.HarvestSettings{
		FeatureService: domain.FeatureServiceSettings{
			BaseURL:  s.getString(keyArcGISBaseURL, d.FeatureService.BaseURL),
			PageSize: s.getInt(keyArcGISPageSize, d.FeatureService.PageSize),
		},
		Catalog: domain.CatalogSettings{
			BaseURL:           s.getString(keyCatalogBaseURL, d.Catalog.BaseURL),
			Token:             s.configStore.GetString(keyCatalogToken),
			RequestsPerSecond: s.getFloat(keyCatalogRPS, d.Catalog.RequestsPerSecond),
			PageSize:          s.getInt(keyCatalogPageSize, d.Catalog.PageSize),
			OwnerName:         s.getString(keyCatalogOwnerName, d.Catalog.OwnerName),
			StewardName:       s.getString(keyCatalogSteward, d.Catalog.StewardName),
			StewardPartyID:    s.getInt(keyCatalogStewardID, d.Catalog.StewardPartyID),
		},
		Macrostrat: domain.EnrichmentSettings{
			Enabled: s.getBool(keyMacrostratEnabled, d.Macrostrat.Enabled),
			BaseURL: s.getString(keyMacrostratBaseURL, d.Macrostrat.BaseURL),
		},
		CRCWeb: domain.EnrichmentSettings{
			Enabled: s.getBool(keyCRCWebEnabled, d.CRCWeb.Enabled),
			BaseURL: s.getString(keyCRCWebBaseURL, d.CRCWeb.BaseURL),
		},
		Retry: domain.RetrySettings{
			MaxAttempts:     s.getInt(keyRetryMaxAttempts, d.Retry.MaxAttempts),
			InitialInterval: s.getDuration(keyRetryInitialMS, time.Millisecond, d.Retry.InitialInterval),
			MaxInterval:     s.getDuration(keyRetryMaxMS, time.Millisecond, d.Retry.MaxInterval),
		},
		Cache: domain.CacheSettings{
			Enabled: s.getBool(keyCacheEnabled, d.Cache.Enabled),
			TTL:     s.getDuration(keyCacheTTLHours, time.Hour, d.Cache.TTL),
		},
		Pipeline: domain.PipelineSettings{
			Sequential: s.getBool(keyPipelineSequential, d.Pipeline.Sequential),
		},
		HTTPTimeout: s.getDuration(keyHTTPTimeoutSeconds, time.Second, d.HTTPTimeout),
		Collections: make(map[domain.CollectionType]domain.Collection, len(d.Collections)),
	}

	if token := s.getenv(TokenEnvVar); token != "" {
		settings.Catalog.Token = token
	}

	for ct, c := range d.Collections {
		c.ParentID = s.getString(parentIDKey(ct), c.ParentID)
		settings.Collections[ct] = c
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Set parses and stores one configuration key, then saves the file.
func (s *SettingsService) Set(key string, value any) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	v, err := coerce(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, v); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

// Keys lists the known configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.HarvestSettings {
	return domain.DefaultHarvestSettings()
}

// Path returns the configuration file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// coerce converts a CLI string or typed value to the key's kind.
func coerce(kind keyKind, value any) (any, error) {
	str, isString := value.(string)
	switch kind {
	case kindString:
		if !isString {
			return nil, fmt.Errorf("expected a string, got %T", value)
		}
		return strings.TrimSpace(str), nil
	case kindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("expected an integer: %w", err)
			}
			return n, nil
		}
	case kindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number: %w", err)
			}
			return f, nil
		}
	case kindBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("expected true or false: %w", err)
			}
			return b, nil
		}
	}
	return nil, fmt.Errorf("unsupported value type %T", value)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if val, ok := s.configStore.Get(key); ok {
		if b, isBool := val.(bool); isBool {
			return b
		}
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); ok {
		return time.Duration(s.configStore.GetInt(key)) * unit
	}
	return defaultVal
}
