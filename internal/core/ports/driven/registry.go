package driven

import "github.com/custodia-labs/docqa-cli/internal/core/domain"

// DocumentRegistry holds the session's ingested documents in insertion order.
type DocumentRegistry interface {
	// Add appends documents and returns how many were new. A document whose
	// ID is already present replaces it in place.
	Add(docs ...domain.Document) int

	// Remove deletes a document by ID and reports whether it was present.
	Remove(id string) bool

	// Replace swaps the whole content, used when hydrating from the backend.
	Replace(docs []domain.Document)

	// Get returns a document by ID.
	Get(id string) (domain.Document, bool)

	// List returns a copy of all documents.
	List() []domain.Document

	// Len returns the number of documents.
	Len() int

	// Clear removes every document.
	Clear()
}

// ConversationLog holds the session's messages in append order.
type ConversationLog interface {
	// Append adds messages at the end of the log.
	Append(msgs ...domain.Message)

	// Find returns the message with the given timestamp.
	Find(timestamp int64) (domain.Message, bool)

	// List returns a copy of all messages.
	List() []domain.Message

	// Len returns the number of messages.
	Len() int

	// Clear removes every message.
	Clear()
}
