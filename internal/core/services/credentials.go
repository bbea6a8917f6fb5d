package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure CredentialsService implements the interface.
var _ driving.CredentialsService = (*CredentialsService)(nil)

// CredentialsService authenticates against the backend and keeps the token
// in the settings store.
type CredentialsService struct {
	auth  driven.AuthBackend
	store driven.SettingsStore
}

// NewCredentialsService creates a new credentials service.
func NewCredentialsService(auth driven.AuthBackend, store driven.SettingsStore) *CredentialsService {
	return &CredentialsService{
		auth:  auth,
		store: store,
	}
}

// Login exchanges credentials for a token and stores it.
func (s *CredentialsService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	result, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.persist(result)
}

// Register creates an account and stores its token.
func (s *CredentialsService) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email address is invalid", domain.ErrInvalidInput)
	}

	result, err := s.auth.Register(ctx, username, email, password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return s.persist(result)
}

// Logout removes the stored token.
func (s *CredentialsService) Logout() error {
	if err := s.store.ClearCredentials(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	logger.Debug("Cleared stored credentials")
	return nil
}

// Current returns the signed-in username.
func (s *CredentialsService) Current() (string, bool) {
	settings, err := s.store.Load()
	if err != nil || !settings.Authenticated() {
		return "", false
	}
	return settings.Username, true
}

func (s *CredentialsService) persist(result *domain.AuthResult) (*domain.Account, error) {
	if err := s.store.SaveCredentials(result.Token, result.Account.Username); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	logger.Info("Signed in as %s", result.Account.Username)
	account := result.Account
	return &account, nil
}
