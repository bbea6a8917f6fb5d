package chat

import "errors"

// Error definitions for the chat view.
var (
	// ErrNoQueryPipeline indicates that no query pipeline was provided.
	ErrNoQueryPipeline = errors.New("query pipeline is required")

	// ErrNoUploadOrchestrator indicates that no upload orchestrator was provided.
	ErrNoUploadOrchestrator = errors.New("upload orchestrator is required")

	// ErrUnknownCommand indicates an unrecognised slash command.
	ErrUnknownCommand = errors.New("unknown command")
)
