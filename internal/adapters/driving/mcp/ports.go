package mcp

import (
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions.
	Query driving.QueryPipeline

	// Session exposes statistics and records feedback.
	Session driving.SessionService

	// Upload submits file batches.
	Upload driving.UploadOrchestrator

	// Document lists and deletes documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryPipeline
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	// Upload and Document are optional; their tools report ErrUnavailable
	return nil
}
