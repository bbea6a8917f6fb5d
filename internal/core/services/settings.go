package services

import (
	"fmt"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages the persisted client settings.
type SettingsService struct {
	store driven.SettingsStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store driven.SettingsStore) *SettingsService {
	return &SettingsService{
		store: store,
	}
}

// Get returns the stored settings.
func (s *SettingsService) Get() (domain.ClientSettings, error) {
	settings, err := s.store.Load()
	if err != nil {
		return domain.ClientSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Value returns the string form of one setting.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return settings.Get(key)
}

// Set updates one setting. The whole document is validated before it is written.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Set(key, value); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.store.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Path returns the settings file path.
func (s *SettingsService) Path() string {
	return s.store.Path()
}
