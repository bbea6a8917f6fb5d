// Package domain defines the core business entities for docqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A file ingested by the backend
//   - UploadTask: The per-file state of one upload batch
//   - Message: One entry of the conversation log
//   - Feedback: A user's vote on an assistant message
//   - SessionStats: Running statistics for the session
//   - PipelineStatus: The state of the single in-flight operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
