package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default client settings.
const (
	DefaultBackendURL     = "http://localhost:8080/api"
	DefaultBackendTimeout = 120 * time.Second
	DefaultTopK           = 3

	// MinTopK and MaxTopK bound the number of chunks the backend may retrieve.
	MinTopK = 1
	MaxTopK = 10
)

// ClientSettings configures how the client reaches the backend.
type ClientSettings struct {
	// BackendURL is the API base URL, without trailing slash.
	BackendURL string

	// Timeout bounds each backend request.
	Timeout time.Duration

	// RateLimit caps backend requests per second. Zero means unlimited.
	RateLimit float64

	// TopK is the number of chunks requested per question.
	TopK int

	// Token is the bearer credential attached to every backend call.
	Token string

	// Username is the account the token belongs to, for display.
	Username string
}

// DefaultClientSettings returns settings with every default applied.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		BackendURL: DefaultBackendURL,
		Timeout:    DefaultBackendTimeout,
		TopK:       DefaultTopK,
	}
}

// Validate checks the settings are usable.
func (s ClientSettings) Validate() error {
	if s.BackendURL == "" {
		return fmt.Errorf("%w: backend url is required", ErrInvalidInput)
	}
	if s.TopK < MinTopK || s.TopK > MaxTopK {
		return fmt.Errorf("%w: top_k must be between %d and %d", ErrInvalidInput, MinTopK, MaxTopK)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidInput)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidInput)
	}
	return nil
}

// Authenticated reports whether a token is configured.
func (s ClientSettings) Authenticated() bool {
	return s.Token != ""
}

// Account is the user returned by the auth collaborator.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResult is a successful login or registration.
type AuthResult struct {
	Token   string
	Account Account
}

// Setting keys, as written in the config file.
const (
	KeyBackendURL     = "backend.url"
	KeyBackendTimeout = "backend.timeout_seconds"
	KeyRateLimit      = "backend.rate_limit"
	KeyTopK           = "query.top_k"
	KeyAuthToken      = "auth.token"
	KeyAuthUsername   = "auth.username"
)

// SettingKeys lists every key in display order.
var SettingKeys = []string{
	KeyBackendURL,
	KeyBackendTimeout,
	KeyRateLimit,
	KeyTopK,
	KeyAuthToken,
	KeyAuthUsername,
}

// Get returns the string form of a setting.
func (s ClientSettings) Get(key string) (string, error) {
	switch key {
	case KeyBackendURL:
		return s.BackendURL, nil
	case KeyBackendTimeout:
		return strconv.Itoa(int(s.Timeout / time.Second)), nil
	case KeyRateLimit:
		return strconv.FormatFloat(s.RateLimit, 'f', -1, 64), nil
	case KeyTopK:
		return strconv.Itoa(s.TopK), nil
	case KeyAuthToken:
		return s.Token, nil
	case KeyAuthUsername:
		return s.Username, nil
	}
	return "", fmt.Errorf("%w: unknown key %q", ErrInvalidInput, key)
}

// Set parses value into the setting named by key.
func (s *ClientSettings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyBackendURL:
		s.BackendURL = strings.TrimRight(value, "/")
	case KeyBackendTimeout:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a whole number of seconds", ErrInvalidInput, key)
		}
		s.Timeout = time.Duration(n) * time.Second
	case KeyRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidInput, key)
		}
		s.RateLimit = f
	case KeyTopK:
		n, err := strconv.Atoi(value)
		if err != nil || n < MinTopK || n > MaxTopK {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidInput, key, MinTopK, MaxTopK)
		}
		s.TopK = n
	case KeyAuthToken:
		s.Token = value
	case KeyAuthUsername:
		s.Username = value
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidInput, key)
	}
	return nil
}
