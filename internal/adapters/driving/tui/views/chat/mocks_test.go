package chat

import (
	"context"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// MockQueryPipeline implements driving.QueryPipeline for testing.
type MockQueryPipeline struct {
	SubmitFunc func(ctx context.Context, question string) (*domain.Exchange, error)
	Questions  []string
}

func (m *MockQueryPipeline) Submit(ctx context.Context, question string) (*domain.Exchange, error) {
	m.Questions = append(m.Questions, question)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, question)
	}
	return &domain.Exchange{
		Question: domain.Message{Role: domain.RoleUser, Content: question, Timestamp: 1},
		Answer:   domain.Message{Role: domain.RoleAssistant, Content: "answer", Timestamp: 2},
	}, nil
}

// MockUploadOrchestrator implements driving.UploadOrchestrator for testing.
type MockUploadOrchestrator struct {
	SubmitFunc func(ctx context.Context, files []domain.CandidateFile) (*domain.BatchResult, error)
	Batches    [][]domain.CandidateFile
}

func (m *MockUploadOrchestrator) Submit(ctx context.Context, files []domain.CandidateFile) (*domain.BatchResult, error) {
	m.Batches = append(m.Batches, files)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, files)
	}
	return &domain.BatchResult{}, nil
}

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	mu          sync.Mutex
	status      domain.PipelineStatus
	stats       domain.SessionStats
	messages    []domain.Message
	feedback    map[int64]domain.Polarity
	progress    map[string]int
	banner      string
	cleared     int
	feedbackErr error
}

func newMockSession() *MockSessionService {
	return &MockSessionService{
		status:   domain.StatusReady,
		feedback: make(map[int64]domain.Polarity),
		progress: make(map[string]int),
	}
}

func (m *MockSessionService) Status() domain.PipelineStatus { return m.status }
func (m *MockSessionService) Stats() domain.SessionStats    { return m.stats }
func (m *MockSessionService) Messages() []domain.Message    { return m.messages }
func (m *MockSessionService) Progress() map[string]int      { return m.progress }
func (m *MockSessionService) Banner() string                { return m.banner }
func (m *MockSessionService) DismissBanner()                { m.banner = "" }
func (m *MockSessionService) Subscribe(driving.Observer)    {}

func (m *MockSessionService) Feedback(timestamp int64) (domain.Polarity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.feedback[timestamp]
	return p, ok
}

func (m *MockSessionService) RecordFeedback(timestamp int64, polarity domain.Polarity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.feedbackErr != nil {
		return m.feedbackErr
	}
	m.feedback[timestamp] = polarity
	return nil
}

func (m *MockSessionService) ClearChat() {
	m.cleared++
	m.messages = nil
}
