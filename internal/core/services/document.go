package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService keeps the session's document registry in step with the backend.
type DocumentService struct {
	session *Session
	backend driven.DocumentBackend
}

// NewDocumentService creates a new document service.
func NewDocumentService(session *Session, backend driven.DocumentBackend) *DocumentService {
	return &DocumentService{
		session: session,
		backend: backend,
	}
}

// Hydrate replaces the registry with the documents the backend already holds.
func (s *DocumentService) Hydrate(ctx context.Context) error {
	docs, err := s.backend.ListDocuments(ctx)
	if err != nil {
		s.session.setBanner(fmt.Sprintf("failed to load documents: %v", err))
		return fmt.Errorf("list documents: %w", err)
	}

	n := s.session.replaceDocuments(docs)
	logger.Debug("Hydrated %d documents", n)
	return nil
}

// List returns the registered documents.
func (s *DocumentService) List() []domain.Document {
	return s.session.registry.List()
}

// Delete removes one document from the backend, then from the registry.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, ok := s.session.registry.Get(id); !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	if err := s.remove(ctx, id); err != nil {
		s.session.setBanner(fmt.Sprintf("failed to delete document: %v", err))
		return err
	}
	return nil
}

// Clear deletes every registered document concurrently. Successful deletions
// are not rolled back when a sibling fails.
func (s *DocumentService) Clear(ctx context.Context) error {
	docs := s.session.registry.List()
	if len(docs) == 0 {
		return nil
	}

	logger.Info("Clearing %d documents", len(docs))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := range docs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.remove(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(docs[i].ID)
	}
	wg.Wait()

	if len(errs) > 0 {
		s.session.setBanner("failed to delete documents")
		return fmt.Errorf("clear documents: %w", errors.Join(errs...))
	}
	return nil
}

// remove deletes one document on the backend and commits the removal locally.
func (s *DocumentService) remove(ctx context.Context, id string) error {
	if err := s.backend.DeleteDocument(ctx, id); err != nil {
		logger.Warn("Delete of %s failed: %v", id, err)
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	s.session.removeDocument(id)
	return nil
}
