package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func TestNewDocumentRegistry(t *testing.T) {
	registry := NewDocumentRegistry()
	require.NotNil(t, registry)
	assert.NotNil(t, registry.index)
	assert.Equal(t, 0, registry.Len())
	assert.Empty(t, registry.List())
}

func TestDocumentRegistry_Add_KeepsOrder(t *testing.T) {
	registry := NewDocumentRegistry()

	registry.Add(domain.Document{ID: "doc-2", Name: "b.txt"})
	registry.Add(domain.Document{ID: "doc-1", Name: "a.txt"}, domain.Document{ID: "doc-3", Name: "c.txt"})

	docs := registry.List()
	require.Len(t, docs, 3)
	assert.Equal(t, "doc-2", docs[0].ID)
	assert.Equal(t, "doc-1", docs[1].ID)
	assert.Equal(t, "doc-3", docs[2].ID)
}

func TestDocumentRegistry_Add_ReplacesKnownID(t *testing.T) {
	registry := NewDocumentRegistry()

	assert.Equal(t, 1, registry.Add(domain.Document{ID: "doc-1", Name: "a.txt", ChunkCount: 1}))
	assert.Equal(t, 1, registry.Add(domain.Document{ID: "doc-2", Name: "b.txt"}))
	assert.Equal(t, 0, registry.Add(domain.Document{ID: "doc-1", Name: "a.txt", ChunkCount: 5}))

	assert.Equal(t, 2, registry.Len())
	doc, ok := registry.Get("doc-1")
	require.True(t, ok)
	assert.Equal(t, 5, doc.ChunkCount)
	assert.Equal(t, "doc-1", registry.List()[0].ID)
}

func TestDocumentRegistry_Remove(t *testing.T) {
	registry := NewDocumentRegistry()
	registry.Add(
		domain.Document{ID: "doc-1"},
		domain.Document{ID: "doc-2"},
		domain.Document{ID: "doc-3"},
	)

	assert.True(t, registry.Remove("doc-2"))
	assert.False(t, registry.Remove("doc-2"))

	docs := registry.List()
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "doc-3", docs[1].ID)

	// Index must still resolve the shifted entry
	doc, ok := registry.Get("doc-3")
	require.True(t, ok)
	assert.Equal(t, "doc-3", doc.ID)
}

func TestDocumentRegistry_Replace(t *testing.T) {
	registry := NewDocumentRegistry()
	registry.Add(domain.Document{ID: "old"})

	now := time.Now()
	registry.Replace([]domain.Document{
		{ID: "doc-1", Name: "a.txt", UploadedAt: now},
		{ID: "doc-2", Name: "b.txt", UploadedAt: now},
	})

	assert.Equal(t, 2, registry.Len())
	_, ok := registry.Get("old")
	assert.False(t, ok)
}

func TestDocumentRegistry_Clear(t *testing.T) {
	registry := NewDocumentRegistry()
	registry.Add(domain.Document{ID: "doc-1"}, domain.Document{ID: "doc-2"})

	registry.Clear()

	assert.Equal(t, 0, registry.Len())
	_, ok := registry.Get("doc-1")
	assert.False(t, ok)
}

func TestDocumentRegistry_ListReturnsCopy(t *testing.T) {
	registry := NewDocumentRegistry()
	registry.Add(domain.Document{ID: "doc-1", Name: "a.txt"})

	docs := registry.List()
	docs[0].Name = "mutated"

	doc, _ := registry.Get("doc-1")
	assert.Equal(t, "a.txt", doc.Name)
}

func TestDocumentRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewDocumentRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			registry.Add(domain.Document{ID: string(rune('a'+i%26)) + "-doc"})
		}(i)
		go func() {
			defer wg.Done()
			_ = registry.List()
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, registry.Len(), 26)
}
