package driving

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// DocumentService manages the session's document registry against the backend.
type DocumentService interface {
	// Hydrate replaces the registry with the backend's document list.
	Hydrate(ctx context.Context) error

	// List returns the registered documents.
	List() []domain.Document

	// Delete removes one document. On failure the registry is unchanged.
	Delete(ctx context.Context, id string) error

	// Clear deletes every registered document. Documents deleted before a
	// failure stay removed.
	Clear(ctx context.Context) error
}
