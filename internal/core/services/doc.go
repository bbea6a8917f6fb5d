// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// All services share one Session, the aggregate that owns the pipeline
// status, the document registry, the conversation log and the metrics.
//
// Services are pure Go with no external dependencies.
package services
