package memory

import (
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure DocumentRegistry implements the interface.
var _ driven.DocumentRegistry = (*DocumentRegistry)(nil)

// DocumentRegistry is an in-memory, insertion-ordered implementation of
// driven.DocumentRegistry.
type DocumentRegistry struct {
	mu        sync.RWMutex
	documents []domain.Document
	index     map[string]int
}

// NewDocumentRegistry creates an empty registry.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{
		index: make(map[string]int),
	}
}

// Add appends documents, replacing in place any with a known ID.
func (r *DocumentRegistry) Add(docs ...domain.Document) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := 0
	for _, doc := range docs {
		if i, ok := r.index[doc.ID]; ok {
			r.documents[i] = doc
			continue
		}
		r.index[doc.ID] = len(r.documents)
		r.documents = append(r.documents, doc)
		added++
	}
	return added
}

// Remove deletes a document by ID.
func (r *DocumentRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.documents = append(r.documents[:i], r.documents[i+1:]...)
	r.reindex()
	return true
}

// Replace swaps the registry content.
func (r *DocumentRegistry) Replace(docs []domain.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents = nil
	r.index = make(map[string]int, len(docs))
	for _, doc := range docs {
		if i, ok := r.index[doc.ID]; ok {
			r.documents[i] = doc
			continue
		}
		r.index[doc.ID] = len(r.documents)
		r.documents = append(r.documents, doc)
	}
}

// Get retrieves a document by ID.
func (r *DocumentRegistry) Get(id string) (domain.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return domain.Document{}, false
	}
	return r.documents[i], true
}

// List returns a copy of all documents.
func (r *DocumentRegistry) List() []domain.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Document, len(r.documents))
	copy(out, r.documents)
	return out
}

// Len returns the number of documents.
func (r *DocumentRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.documents)
}

// Clear removes every document.
func (r *DocumentRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents = nil
	r.index = make(map[string]int)
}

// reindex rebuilds the ID index (caller must hold lock).
func (r *DocumentRegistry) reindex() {
	r.index = make(map[string]int, len(r.documents))
	for i := range r.documents {
		r.index[r.documents[i].ID] = i
	}
}
