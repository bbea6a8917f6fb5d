package tui

import "errors"

// ErrMissingQueryPipeline is returned when the query pipeline is not provided.
var ErrMissingQueryPipeline = errors.New("tui: query pipeline is required")

// ErrMissingUploadOrchestrator is returned when the upload orchestrator is not provided.
var ErrMissingUploadOrchestrator = errors.New("tui: upload orchestrator is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
