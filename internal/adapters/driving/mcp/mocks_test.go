package mcp

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// mockQueryPipeline is a mock implementation of driving.QueryPipeline.
type mockQueryPipeline struct {
	exchange *domain.Exchange
	err      error
	question string
}

func (m *mockQueryPipeline) Submit(_ context.Context, question string) (*domain.Exchange, error) {
	m.question = question
	return m.exchange, m.err
}

// mockUploadOrchestrator is a mock implementation of driving.UploadOrchestrator.
type mockUploadOrchestrator struct {
	result *domain.BatchResult
	err    error
	files  []domain.CandidateFile
}

func (m *mockUploadOrchestrator) Submit(_ context.Context, files []domain.CandidateFile) (*domain.BatchResult, error) {
	m.files = files
	return m.result, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents  []domain.Document
	err        error
	hydrated   bool
	deletedIDs []string
}

func (m *mockDocumentService) Hydrate(_ context.Context) error {
	m.hydrated = true
	return m.err
}

func (m *mockDocumentService) List() []domain.Document {
	return m.documents
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockDocumentService) Clear(_ context.Context) error {
	return m.err
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	stats       domain.SessionStats
	banner      string
	feedbackErr error
	votes       map[int64]domain.Polarity
}

func (m *mockSessionService) Status() domain.PipelineStatus { return domain.StatusReady }

func (m *mockSessionService) Stats() domain.SessionStats { return m.stats }

func (m *mockSessionService) Messages() []domain.Message { return nil }

func (m *mockSessionService) Feedback(timestamp int64) (domain.Polarity, bool) {
	p, ok := m.votes[timestamp]
	return p, ok
}

func (m *mockSessionService) RecordFeedback(timestamp int64, polarity domain.Polarity) error {
	if m.feedbackErr != nil {
		return m.feedbackErr
	}
	if m.votes == nil {
		m.votes = make(map[int64]domain.Polarity)
	}
	m.votes[timestamp] = polarity
	if polarity == domain.Positive {
		m.stats.PositiveRatePercent = 100
	} else {
		m.stats.PositiveRatePercent = 0
	}
	return nil
}

func (m *mockSessionService) Progress() map[string]int { return map[string]int{} }

func (m *mockSessionService) Banner() string { return m.banner }

func (m *mockSessionService) DismissBanner() { m.banner = "" }

func (m *mockSessionService) ClearChat() {}

func (m *mockSessionService) Subscribe(driving.Observer) {}

func newTestPorts() *Ports {
	return &Ports{
		Query:    &mockQueryPipeline{},
		Session:  &mockSessionService{},
		Upload:   &mockUploadOrchestrator{},
		Document: &mockDocumentService{},
	}
}
