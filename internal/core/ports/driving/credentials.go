package driving

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// CredentialsService signs the user in and out of the backend.
// The bearer token is persisted so later sessions can reuse it.
type CredentialsService interface {
	// Login exchanges a username and password for a token and stores it.
	Login(ctx context.Context, username, password string) (*domain.Account, error)

	// Register creates an account, then stores its token.
	Register(ctx context.Context, username, email, password string) (*domain.Account, error)

	// Logout removes the stored token.
	Logout() error

	// Current returns the signed-in username, if a token is stored.
	Current() (string, bool)
}
