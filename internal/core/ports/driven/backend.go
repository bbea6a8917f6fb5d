package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// ProgressFunc receives upload progress in percent.
// Calls for one upload are strictly increasing and end before Upload returns.
type ProgressFunc func(percent int)

// DocumentBackend is the ingestion and deletion collaborator.
type DocumentBackend interface {
	// Upload submits one file and returns the document the backend created.
	Upload(ctx context.Context, name string, size int64, content io.Reader, progress ProgressFunc) (*domain.Document, error)

	// ListDocuments returns the documents already ingested for the user.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document from the backend.
	DeleteDocument(ctx context.Context, id string) error
}

// QueryBackend is the retrieval-and-generation collaborator.
type QueryBackend interface {
	// Query asks a question. dispatched, if non-nil, is called once the full
	// request has been handed to the backend.
	Query(ctx context.Context, question string, topK int, dispatched func()) (*domain.QueryAnswer, error)
}

// AuthBackend is the authentication collaborator.
type AuthBackend interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (*domain.AuthResult, error)

	// Register creates an account and returns its bearer token.
	Register(ctx context.Context, username, email, password string) (*domain.AuthResult, error)
}
