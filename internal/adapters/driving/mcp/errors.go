// Package mcp provides an MCP (Model Context Protocol) server adapter for docqa.
// It lets AI assistants upload documents and ask questions about them.
package mcp

import "errors"

// ErrMissingQueryPipeline is returned when the query pipeline is not provided.
var ErrMissingQueryPipeline = errors.New("mcp: query pipeline is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")

// ErrUnavailable is returned by tools whose optional port was not provided.
var ErrUnavailable = errors.New("mcp: tool is not available")
