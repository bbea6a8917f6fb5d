// Package tui provides an interactive terminal user interface for docqa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query asks questions.
	Query driving.QueryPipeline

	// Upload submits file batches.
	Upload driving.UploadOrchestrator

	// Document lists and deletes uploaded documents.
	Document driving.DocumentService

	// Session exposes status, stats, messages and feedback.
	Session driving.SessionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	query driving.QueryPipeline,
	upload driving.UploadOrchestrator,
	document driving.DocumentService,
	session driving.SessionService,
) *Ports {
	return &Ports{
		Query:    query,
		Upload:   upload,
		Document: document,
		Session:  session,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Query == nil {
		return ErrMissingQueryPipeline
	}
	if p.Upload == nil {
		return ErrMissingUploadOrchestrator
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
