package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure ConversationLog implements the interface.
var _ driven.ConversationLog = (*ConversationLog)(nil)

// ConversationLog is an in-memory implementation of driven.ConversationLog.
// Messages are never modified once appended.
type ConversationLog struct {
	mu       sync.RWMutex
	messages []domain.Message
}

// NewConversationLog creates an empty log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// Append adds messages at the end of the log.
func (l *ConversationLog) Append(msgs ...domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msgs...)
}

// Find returns the message with the given timestamp.
// Timestamps increase along the log, so a binary search is enough.
func (l *ConversationLog) Find(timestamp int64) (domain.Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := sort.Search(len(l.messages), func(i int) bool {
		return l.messages[i].Timestamp >= timestamp
	})
	if i < len(l.messages) && l.messages[i].Timestamp == timestamp {
		return l.messages[i], true
	}
	return domain.Message{}, false
}

// List returns a copy of all messages.
func (l *ConversationLog) List() []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Clear removes every message.
func (l *ConversationLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}
