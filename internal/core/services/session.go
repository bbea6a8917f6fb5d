package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// Session is the single mutable aggregate shared by the upload orchestrator,
// the query pipeline and the document service. It owns the pipeline status,
// the error banner and the upload progress, and fronts the registry, the
// conversation log and the metrics.
type Session struct {
	registry driven.DocumentRegistry
	log      driven.ConversationLog
	metrics  *MetricsAggregator
	now      func() time.Time

	// storeMu serialises writes that span more than one store, so the
	// document count always matches the registry and votes never outlive
	// their message.
	storeMu sync.Mutex

	mu            sync.RWMutex
	status        domain.PipelineStatus
	operation     uint64
	banner        string
	progress      map[string]int
	lastTimestamp int64
	observers     []driving.Observer
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the wall clock used for timestamps and latency.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a ready session around the given stores.
func NewSession(
	registry driven.DocumentRegistry,
	log driven.ConversationLog,
	metrics *MetricsAggregator,
	opts ...SessionOption,
) *Session {
	s := &Session{
		registry: registry,
		log:      log,
		metrics:  metrics,
		now:      time.Now,
		status:   domain.StatusReady,
		progress: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current pipeline status.
func (s *Session) Status() domain.PipelineStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Stats returns a snapshot of the running statistics.
func (s *Session) Stats() domain.SessionStats {
	return s.metrics.Snapshot()
}

// Documents returns the registered documents.
func (s *Session) Documents() []domain.Document {
	return s.registry.List()
}

// Messages returns the conversation log.
func (s *Session) Messages() []domain.Message {
	return s.log.List()
}

// Feedback returns the vote recorded for a message.
func (s *Session) Feedback(timestamp int64) (domain.Polarity, bool) {
	return s.metrics.Feedback(timestamp)
}

// RecordFeedback upserts a vote on a non-error assistant message.
func (s *Session) RecordFeedback(timestamp int64, polarity domain.Polarity) error {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	msg, ok := s.log.Find(timestamp)
	if !ok {
		return fmt.Errorf("message %d: %w", timestamp, domain.ErrNotFound)
	}
	if !msg.Rateable() {
		return fmt.Errorf("%w: only answers can receive feedback", domain.ErrInvalidInput)
	}
	s.metrics.RecordFeedback(timestamp, polarity)
	logger.Debug("Feedback %s recorded for message %d", polarity, timestamp)
	return nil
}

// Progress returns a copy of the upload progress of unsettled files.
func (s *Session) Progress() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.progress))
	for k, v := range s.progress {
		out[k] = v
	}
	return out
}

// Banner returns the transient error text.
func (s *Session) Banner() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.banner
}

// DismissBanner clears the error text.
func (s *Session) DismissBanner() {
	s.setBanner("")
}

// ClearChat empties the conversation log. Feedback is keyed by message, so it goes too.
func (s *Session) ClearChat() {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	s.log.Clear()
	s.metrics.ResetFeedback()
}

// Subscribe registers an observer.
func (s *Session) Subscribe(o driving.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// begin runs the precondition check and moves ready -> processing atomically.
// It returns an operation token used by later transitions of the same operation.
func (s *Session) begin(check func() error) (uint64, error) {
	s.mu.Lock()
	if check != nil {
		if err := check(); err != nil {
			s.mu.Unlock()
			return 0, err
		}
	}
	if s.status.Busy() {
		s.mu.Unlock()
		return 0, domain.ErrPipelineBusy
	}
	s.status = domain.StatusProcessing
	s.operation++
	op := s.operation
	s.banner = ""
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range observers {
		o.StatusChanged(domain.StatusProcessing)
	}
	return op, nil
}

// advance moves the operation to the next state. Stale tokens and transitions
// the state machine forbids are rejected without effect.
func (s *Session) advance(op uint64, next domain.PipelineStatus) error {
	s.mu.Lock()
	if op != s.operation {
		s.mu.Unlock()
		return fmt.Errorf("%w: operation %d is no longer current", domain.ErrInvalidTransition, op)
	}
	status, err := s.status.Transition(next)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.status = status
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range observers {
		o.StatusChanged(status)
	}
	return nil
}

// finish returns the operation to ready. Ready is reachable from every busy state.
func (s *Session) finish(op uint64) {
	if err := s.advance(op, domain.StatusReady); err != nil {
		logger.Warn("Finishing operation %d: %v", op, err)
	}
}

// commitDocuments adds documents to the registry and counts only the new ones.
func (s *Session) commitDocuments(docs ...domain.Document) {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	if added := s.registry.Add(docs...); added > 0 {
		s.metrics.RecordUpload(added)
	}
}

// replaceDocuments swaps the registry content and resets the count to match.
func (s *Session) replaceDocuments(docs []domain.Document) int {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	s.registry.Replace(docs)
	n := s.registry.Len()
	s.metrics.SetDocumentCount(n)
	return n
}

// removeDocument drops a document and decrements the count if it was present.
func (s *Session) removeDocument(id string) bool {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	if !s.registry.Remove(id) {
		return false
	}
	s.metrics.RecordUpload(-1)
	return true
}

// nextTimestamp returns a unique, strictly increasing message timestamp in ms.
func (s *Session) nextTimestamp() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now().UnixMilli()
	if ts <= s.lastTimestamp {
		ts = s.lastTimestamp + 1
	}
	s.lastTimestamp = ts
	return ts
}

// setBanner replaces the error text.
func (s *Session) setBanner(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banner = text
}

// setProgress records a file's progress if it moves forward.
func (s *Session) setProgress(filename string, percent int) {
	s.mu.Lock()
	if current, ok := s.progress[filename]; ok && percent <= current {
		s.mu.Unlock()
		return
	}
	s.progress[filename] = percent
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range observers {
		o.UploadProgress(filename, percent)
	}
}

// settle drops a file from the progress set.
func (s *Session) settle(filename string) {
	s.mu.Lock()
	delete(s.progress, filename)
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range observers {
		o.UploadSettled(filename)
	}
}

// snapshotObservers copies the observer list (caller must hold lock).
func (s *Session) snapshotObservers() []driving.Observer {
	out := make([]driving.Observer, len(s.observers))
	copy(out, s.observers)
	return out
}
