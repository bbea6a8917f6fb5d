package driven

import "github.com/custodia-labs/docqa-cli/internal/core/domain"

// SettingsStore persists client settings.
// Implementations handle persistence (e.g., TOML files) and defaulting.
type SettingsStore interface {
	// Load returns the stored settings with defaults applied for missing keys.
	Load() (domain.ClientSettings, error)

	// Save persists the settings.
	Save(settings domain.ClientSettings) error

	// SaveCredentials stores the bearer token and username, keeping other keys.
	SaveCredentials(token, username string) error

	// ClearCredentials removes the stored token and username.
	ClearCredentials() error

	// Path returns the settings file path.
	Path() string
}
