package driving

import "github.com/custodia-labs/docqa-cli/internal/core/domain"

// Observer is notified of session changes that happen while an operation runs.
// Calls are made outside any session lock and may come from any goroutine.
type Observer interface {
	// StatusChanged is called after every pipeline transition.
	StatusChanged(status domain.PipelineStatus)

	// UploadProgress is called with strictly increasing percentages per file.
	UploadProgress(filename string, percent int)

	// UploadSettled is called once per submitted file, after its last progress call.
	UploadSettled(filename string)
}

// SessionService exposes the session state read by presentation and the
// conversation-level operations.
type SessionService interface {
	// Status returns the current pipeline status.
	Status() domain.PipelineStatus

	// Stats returns a snapshot of the running statistics.
	Stats() domain.SessionStats

	// Messages returns the conversation log.
	Messages() []domain.Message

	// Feedback returns the vote recorded for a message, if any.
	Feedback(timestamp int64) (domain.Polarity, bool)

	// RecordFeedback upserts a vote on an assistant message.
	RecordFeedback(timestamp int64, polarity domain.Polarity) error

	// Progress returns upload progress of files not yet settled.
	Progress() map[string]int

	// Banner returns the transient session-level error text.
	Banner() string

	// DismissBanner clears the error text.
	DismissBanner()

	// ClearChat empties the conversation log and the feedback.
	ClearChat()

	// Subscribe registers an observer.
	Subscribe(o Observer)
}
