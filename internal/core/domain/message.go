package domain

import (
	"fmt"
	"math"
)

// Role identifies the author of a Message.
type Role string

const (
	// RoleUser is a question typed by the user.
	RoleUser Role = "user"
	// RoleAssistant is an answer, or an error placeholder, from the backend.
	RoleAssistant Role = "assistant"
)

// QueryFailedText replaces the answer when a query fails.
// The underlying error is reported through the session banner instead.
const QueryFailedText = "Sorry, an error occurred while processing your question."

// Message is one entry of the conversation log.
// Timestamp is unique and monotonic within a session and serves as identity.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`

	// Sources lists cited filenames, deduplicated.
	Sources []string `json:"sources,omitempty"`

	// ResponseTimeMs is the backend-reported processing time.
	ResponseTimeMs *int64 `json:"responseTimeMs,omitempty"`

	// Confidence is the backend's score in [0, 100].
	Confidence *float64 `json:"confidence,omitempty"`

	// ChunksUsed is the number of chunks that fed the answer.
	ChunksUsed *int `json:"chunksUsed,omitempty"`

	IsError bool `json:"isError,omitempty"`
}

// Rateable reports whether feedback may be given on the message.
func (m Message) Rateable() bool {
	return m.Role == RoleAssistant && !m.IsError
}

// Footer renders the latency and confidence line shown under an answer,
// or "" when the backend did not report them.
func (m Message) Footer() string {
	if m.ResponseTimeMs == nil {
		return ""
	}
	if m.Confidence == nil {
		return fmt.Sprintf("%dms", *m.ResponseTimeMs)
	}
	return fmt.Sprintf("%dms • Confidence: %.0f%%", *m.ResponseTimeMs, math.Round(*m.Confidence))
}

// DedupeSources returns sources without duplicates, keeping first-seen order.
func DedupeSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(sources))
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Polarity is the direction of a feedback vote.
type Polarity string

const (
	// Positive marks a helpful answer.
	Positive Polarity = "positive"
	// Negative marks an unhelpful answer.
	Negative Polarity = "negative"
)

// ParsePolarity validates a polarity string.
func ParsePolarity(s string) (Polarity, error) {
	switch Polarity(s) {
	case Positive, Negative:
		return Polarity(s), nil
	}
	return "", fmt.Errorf("%w: polarity must be %q or %q", ErrInvalidInput, Positive, Negative)
}

// QueryAnswer is the backend's successful response to a question.
type QueryAnswer struct {
	Answer         string
	Sources        []string
	ResponseTimeMs int64
	Confidence     float64
	ChunksUsed     int
}

// Exchange is the pair of messages produced by one query.
type Exchange struct {
	Question Message `json:"question"`
	Answer   Message `json:"answer"`
}

// Failed reports whether the query produced an error placeholder.
func (e Exchange) Failed() bool {
	return e.Answer.IsError
}
