package driving

import "github.com/custodia-labs/crc-harvest/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	Get() (*domain.HarvestSettings, error)

	// Set stores one configuration key. The key must be known.
	Set(key string, value any) error

	// Keys lists the known configuration keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.HarvestSettings

	// Path returns the configuration file location.
	Path() string
}
