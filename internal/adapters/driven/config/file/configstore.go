package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// DefaultDirName is the config directory created under the user's home.
const DefaultDirName = ".docqa"

// document mirrors the TOML file. Pointer fields distinguish unset keys
// from zero values so defaults survive a partial file.
type document struct {
	Backend struct {
		URL            *string  `toml:"url,omitempty"`
		TimeoutSeconds *int     `toml:"timeout_seconds,omitempty"`
		RateLimit      *float64 `toml:"rate_limit,omitempty"`
	} `toml:"backend"`
	Query struct {
		TopK *int `toml:"top_k,omitempty"`
	} `toml:"query"`
	Auth struct {
		Token    *string `toml:"token,omitempty"`
		Username *string `toml:"username,omitempty"`
	} `toml:"auth"`
}

// SettingsStore is a file-based implementation of driven.SettingsStore using TOML.
// Settings are stored in config.toml within the docqa config directory.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsStore creates a new TOML-based settings store.
// If configDir is empty, defaults to ~/.docqa/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, DefaultDirName)
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the settings file, applying defaults for every missing key.
// A missing file yields the defaults.
func (s *SettingsStore) Load() (domain.ClientSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Save validates and writes the settings.
func (s *SettingsStore) Save(settings domain.ClientSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(settings)
}

// SaveCredentials stores the token and username, keeping other keys.
func (s *SettingsStore) SaveCredentials(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return err
	}
	settings.Token = token
	settings.Username = username
	return s.save(settings)
}

// ClearCredentials removes the stored token and username.
func (s *SettingsStore) ClearCredentials() error {
	return s.SaveCredentials("", "")
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// load reads and defaults the settings (caller must hold lock).
func (s *SettingsStore) load() (domain.ClientSettings, error) {
	settings := domain.DefaultClientSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return settings, fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	if doc.Backend.URL != nil {
		settings.BackendURL = *doc.Backend.URL
	}
	if doc.Backend.TimeoutSeconds != nil {
		settings.Timeout = time.Duration(*doc.Backend.TimeoutSeconds) * time.Second
	}
	if doc.Backend.RateLimit != nil {
		settings.RateLimit = *doc.Backend.RateLimit
	}
	if doc.Query.TopK != nil {
		settings.TopK = *doc.Query.TopK
	}
	if doc.Auth.Token != nil {
		settings.Token = *doc.Auth.Token
	}
	if doc.Auth.Username != nil {
		settings.Username = *doc.Auth.Username
	}
	return settings, nil
}

// save writes settings to the TOML file (caller must hold lock).
func (s *SettingsStore) save(settings domain.ClientSettings) error {
	var doc document
	url := settings.BackendURL
	timeout := int(settings.Timeout / time.Second)
	topK := settings.TopK
	doc.Backend.URL = &url
	doc.Backend.TimeoutSeconds = &timeout
	if settings.RateLimit > 0 {
		rl := settings.RateLimit
		doc.Backend.RateLimit = &rl
	}
	doc.Query.TopK = &topK
	if settings.Token != "" {
		token, user := settings.Token, settings.Username
		doc.Auth.Token = &token
		doc.Auth.Username = &user
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	// Write with restricted permissions; the file may hold a token
	return os.WriteFile(s.filePath, data, 0600)
}

// Values reads the raw file as flattened dot-notation keys, sorted.
// Unknown keys are included so they can be reported.
func (s *SettingsStore) Values() (map[string]any, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil, nil
		}
		return nil, nil, err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, nil, err
	}

	flat := flattenMap(loaded, "")
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return flat, keys, nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}
