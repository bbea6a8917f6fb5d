// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// StatusChanged is sent when the pipeline moves to a new state.
type StatusChanged struct {
	Status domain.PipelineStatus
}

// UploadProgress reports the transfer progress of one file.
type UploadProgress struct {
	Filename string
	Percent  int
}

// UploadSettled is sent when a file's upload has succeeded or failed.
type UploadSettled struct {
	Filename string
}

// QuestionSubmitted is a command to ask a question.
type QuestionSubmitted struct {
	Question string
}

// QueryCompleted carries the outcome of a question back to the model.
// Err is only set when the question was rejected before reaching the backend.
type QueryCompleted struct {
	Exchange *domain.Exchange
	Err      error
}

// UploadCompleted carries the outcome of an upload batch.
type UploadCompleted struct {
	Result *domain.BatchResult
	Err    error
}

// DocumentsLoaded carries the document list after hydration.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentDeleted signals a document was deleted.
type DocumentDeleted struct {
	ID  string
	Err error
}

// DocumentsCleared signals every document was deleted.
type DocumentsCleared struct {
	Err error
}

// FeedbackRecorded signals a vote was stored.
type FeedbackRecorded struct {
	Timestamp int64
	Polarity  domain.Polarity
	Err       error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation and question input.
	ViewChat ViewType = iota
	// ViewDocuments lists the uploaded documents.
	ViewDocuments
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
