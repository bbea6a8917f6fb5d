package domain

import "fmt"

// PipelineStatus is the state of the session's single in-flight operation.
type PipelineStatus string

// Pipeline states.
const (
	// StatusReady accepts new uploads and questions.
	StatusReady PipelineStatus = "ready"

	// StatusProcessing is entered as soon as an upload batch or question is accepted.
	StatusProcessing PipelineStatus = "processing"

	// StatusRetrieving is entered when a question is dispatched to the backend.
	StatusRetrieving PipelineStatus = "retrieving"

	// StatusGenerating is entered once the backend has the full request and is answering.
	StatusGenerating PipelineStatus = "generating"
)

// transitions lists the allowed successors of each state.
// StatusReady is reachable from every other state.
var transitions = map[PipelineStatus][]PipelineStatus{
	StatusReady:      {StatusProcessing},
	StatusProcessing: {StatusRetrieving, StatusReady},
	StatusRetrieving: {StatusGenerating, StatusReady},
	StatusGenerating: {StatusReady},
}

// IsValid returns true if the status is recognised.
func (s PipelineStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether next is an allowed successor of s.
func (s PipelineStatus) CanTransitionTo(next PipelineStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next if the move is allowed, or ErrInvalidTransition.
func (s PipelineStatus) Transition(next PipelineStatus) (PipelineStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// Busy reports whether new submissions must be rejected.
func (s PipelineStatus) Busy() bool {
	return s != StatusReady
}

// String returns the string representation.
func (s PipelineStatus) String() string {
	return string(s)
}

// Description returns a human-readable label.
func (s PipelineStatus) Description() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusProcessing:
		return "Processing..."
	case StatusRetrieving:
		return "Retrieving..."
	case StatusGenerating:
		return "Generating..."
	default:
		return "Unknown"
	}
}
