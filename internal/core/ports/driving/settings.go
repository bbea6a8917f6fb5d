package driving

import "github.com/custodia-labs/docqa-cli/internal/core/domain"

// SettingsService reads and updates the persisted client settings.
type SettingsService interface {
	// Get returns the settings with defaults applied.
	Get() (domain.ClientSettings, error)

	// Value returns the string form of one setting.
	Value(key string) (string, error)

	// Set validates and persists one setting.
	Set(key, value string) error

	// Path returns where the settings are stored.
	Path() string
}
