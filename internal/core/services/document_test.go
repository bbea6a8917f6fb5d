package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func seededDocuments() []domain.Document {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Document{
		{ID: "1", Name: "a.txt", ChunkCount: 2, UploadedAt: at},
		{ID: "2", Name: "b.txt", ChunkCount: 4, UploadedAt: at},
		{ID: "3", Name: "c.txt", ChunkCount: 1, UploadedAt: at},
	}
}

func TestNewDocumentService(t *testing.T) {
	svc := NewDocumentService(newTestSession(), &mockDocumentBackend{})
	require.NotNil(t, svc)
}

func TestDocumentService_Hydrate(t *testing.T) {
	s := newTestSession()
	backend := &mockDocumentBackend{
		ListFunc: func(context.Context) ([]domain.Document, error) {
			return seededDocuments(), nil
		},
	}
	svc := NewDocumentService(s, backend)

	require.NoError(t, svc.Hydrate(context.Background()))

	assert.Len(t, svc.List(), 3)
	assert.Equal(t, 3, s.Stats().TotalDocs)
}

func TestDocumentService_HydrateFailure(t *testing.T) {
	s := newTestSession()
	backend := &mockDocumentBackend{
		ListFunc: func(context.Context) ([]domain.Document, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewDocumentService(s, backend)

	err := svc.Hydrate(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list documents")
	assert.Equal(t, "failed to load documents: connection refused", s.Banner())
	assert.Empty(t, svc.List())
}

func TestDocumentService_Delete(t *testing.T) {
	s := newTestSession()
	backend := &mockDocumentBackend{
		ListFunc: func(context.Context) ([]domain.Document, error) { return seededDocuments(), nil },
	}
	svc := NewDocumentService(s, backend)
	require.NoError(t, svc.Hydrate(context.Background()))

	require.NoError(t, svc.Delete(context.Background(), "2"))

	assert.Equal(t, []string{"2"}, backend.deleted)
	_, ok := s.registry.Get("2")
	assert.False(t, ok)
	assert.Len(t, svc.List(), 2)
	assert.Equal(t, 2, s.Stats().TotalDocs)
}

func TestDocumentService_DeleteUnknown(t *testing.T) {
	s := newTestSession()
	backend := &mockDocumentBackend{}
	svc := NewDocumentService(s, backend)

	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, backend.deleted)
}

func TestDocumentService_DeleteFailureKeepsDocument(t *testing.T) {
	s := newTestSession()
	backend := &mockDocumentBackend{
		ListFunc: func(context.Context) ([]domain.Document, error) { return seededDocuments(), nil },
		DeleteFunc: func(context.Context, string) error {
			return &domain.BackendError{StatusCode: 500, Message: "disk full"}
		},
	}
	svc := NewDocumentService(s, backend)
	require.NoError(t, svc.Hydrate(context.Background()))

	err := svc.Delete(context.Background(), "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.Len(t, svc.List(), 3)
	assert.Equal(t, 3, s.Stats().TotalDocs)
	assert.Contains(t, s.Banner(), "failed to delete document")
}

func TestDocumentService_Clear(t *testing.T) {
	s := newTestSession()
	backend := &mockDocumentBackend{
		ListFunc: func(context.Context) ([]domain.Document, error) { return seededDocuments(), nil },
	}
	svc := NewDocumentService(s, backend)
	require.NoError(t, svc.Hydrate(context.Background()))
	s.log.Append(domain.Message{Role: domain.RoleUser, Content: "q", Timestamp: 1})

	require.NoError(t, svc.Clear(context.Background()))

	assert.Empty(t, svc.List())
	assert.Equal(t, 0, s.Stats().TotalDocs)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, backend.deleted)
	assert.Len(t, s.Messages(), 1)
}

func TestDocumentService_ClearEmpty(t *testing.T) {
	backend := &mockDocumentBackend{}
	svc := NewDocumentService(newTestSession(), backend)

	require.NoError(t, svc.Clear(context.Background()))
	assert.Empty(t, backend.deleted)
}

func TestDocumentService_ClearPartialFailure(t *testing.T) {
	s := newTestSession()
	backend := &mockDocumentBackend{
		ListFunc: func(context.Context) ([]domain.Document, error) { return seededDocuments(), nil },
		DeleteFunc: func(_ context.Context, id string) error {
			if id == "2" {
				return errors.New("timeout")
			}
			return nil
		},
	}
	svc := NewDocumentService(s, backend)
	require.NoError(t, svc.Hydrate(context.Background()))

	err := svc.Clear(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete document 2")
	docs := svc.List()
	require.Len(t, docs, 1)
	assert.Equal(t, "2", docs[0].ID)
	assert.Equal(t, 1, s.Stats().TotalDocs)
	assert.Equal(t, "failed to delete documents", s.Banner())
}
