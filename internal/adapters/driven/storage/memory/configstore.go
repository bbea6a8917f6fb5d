package memory

import (
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is an in-memory driven.SettingsStore, used when the settings
// directory cannot be created. Changes last for the process only.
type SettingsStore struct {
	mu       sync.RWMutex
	settings domain.ClientSettings
}

// NewSettingsStore creates a store holding the default settings.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		settings: domain.DefaultClientSettings(),
	}
}

// Load returns the stored settings.
func (s *SettingsStore) Load() (domain.ClientSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// Save replaces the stored settings after validating them.
func (s *SettingsStore) Save(settings domain.ClientSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

// SaveCredentials stores the token and username.
func (s *SettingsStore) SaveCredentials(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Token = token
	s.settings.Username = username
	return nil
}

// ClearCredentials removes the token and username.
func (s *SettingsStore) ClearCredentials() error {
	return s.SaveCredentials("", "")
}

// Path returns an empty path; nothing is written to disk.
func (s *SettingsStore) Path() string {
	return ""
}
