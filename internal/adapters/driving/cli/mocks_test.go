package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// mockQueryPipeline implements driving.QueryPipeline for testing.
type mockQueryPipeline struct {
	SubmitFunc func(ctx context.Context, question string) (*domain.Exchange, error)
}

func (m *mockQueryPipeline) Submit(ctx context.Context, question string) (*domain.Exchange, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, question)
	}
	responseTime := int64(312)
	confidence := 91.0
	chunks := 3
	return &domain.Exchange{
		Question: domain.Message{Role: domain.RoleUser, Content: question, Timestamp: 1},
		Answer: domain.Message{
			Role:           domain.RoleAssistant,
			Content:        "Mock answer",
			Timestamp:      2,
			Sources:        []string{"a.txt", "b.txt"},
			ResponseTimeMs: &responseTime,
			Confidence:     &confidence,
			ChunksUsed:     &chunks,
		},
	}, nil
}

// mockUploadOrchestrator implements driving.UploadOrchestrator for testing.
type mockUploadOrchestrator struct {
	SubmitFunc func(ctx context.Context, files []domain.CandidateFile) (*domain.BatchResult, error)
	files      []domain.CandidateFile
}

func (m *mockUploadOrchestrator) Submit(ctx context.Context, files []domain.CandidateFile) (*domain.BatchResult, error) {
	m.files = files
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, files)
	}
	result := &domain.BatchResult{}
	for i, f := range files {
		if reason := f.Validate(); reason != "" {
			result.Rejected = append(result.Rejected, domain.Rejection{Filename: f.Name, Reason: reason})
			continue
		}
		result.Accepted = append(result.Accepted, domain.Document{
			ID:         "doc-" + string(rune('1'+i)),
			Name:       f.Name,
			ChunkCount: 2,
		})
	}
	return result, nil
}

// mockDocumentService implements driving.DocumentService for testing.
type mockDocumentService struct {
	documents  []domain.Document
	hydrateErr error
	deleteErr  error
	clearErr   error
	hydrated   int
	deleted    []string
	cleared    bool
}

func newMockDocumentService() *mockDocumentService {
	return &mockDocumentService{
		documents: []domain.Document{
			{
				ID:         "doc-1",
				Name:       "Test Document 1.txt",
				ChunkCount: 4,
				UploadedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			},
			{ID: "doc-2", Name: "Test Document 2.txt", ChunkCount: 1},
		},
	}
}

func (m *mockDocumentService) Hydrate(context.Context) error {
	m.hydrated++
	return m.hydrateErr
}

func (m *mockDocumentService) List() []domain.Document {
	return m.documents
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockDocumentService) Clear(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	m.documents = nil
	return nil
}

// mockSessionService implements driving.SessionService for testing.
type mockSessionService struct {
	stats  domain.SessionStats
	banner string
}

func (m *mockSessionService) Status() domain.PipelineStatus { return domain.StatusReady }

func (m *mockSessionService) Stats() domain.SessionStats { return m.stats }

func (m *mockSessionService) Messages() []domain.Message { return nil }

func (m *mockSessionService) Feedback(int64) (domain.Polarity, bool) { return "", false }

func (m *mockSessionService) RecordFeedback(int64, domain.Polarity) error { return nil }

func (m *mockSessionService) Progress() map[string]int { return map[string]int{} }

func (m *mockSessionService) Banner() string { return m.banner }

func (m *mockSessionService) DismissBanner() { m.banner = "" }

func (m *mockSessionService) ClearChat() {}

func (m *mockSessionService) Subscribe(driving.Observer) {}

// mockCredentialsService implements driving.CredentialsService for testing.
type mockCredentialsService struct {
	LoginFunc    func(ctx context.Context, username, password string) (*domain.Account, error)
	RegisterFunc func(ctx context.Context, username, email, password string) (*domain.Account, error)
	username     string
	password     string
	email        string
	loggedOut    bool
}

func (m *mockCredentialsService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	m.username, m.password = username, password
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &domain.Account{ID: 1, Username: username}, nil
}

func (m *mockCredentialsService) Register(
	ctx context.Context, username, email, password string,
) (*domain.Account, error) {
	m.username, m.email, m.password = username, email, password
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	return &domain.Account{ID: 2, Username: username, Email: email}, nil
}

func (m *mockCredentialsService) Logout() error {
	m.loggedOut = true
	m.username = ""
	return nil
}

func (m *mockCredentialsService) Current() (string, bool) {
	return m.username, m.username != ""
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.ClientSettings
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultClientSettings()}
}

func (m *mockSettingsService) Get() (domain.ClientSettings, error) {
	return m.settings, nil
}

func (m *mockSettingsService) Value(key string) (string, error) {
	return m.settings.Get(key)
}

func (m *mockSettingsService) Set(key, value string) error {
	next := m.settings
	if err := next.Set(key, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	m.settings = next
	return nil
}

func (m *mockSettingsService) Path() string {
	return "/home/test/.docqa/config.toml"
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	query       *mockQueryPipeline
	upload      *mockUploadOrchestrator
	documents   *mockDocumentService
	session     *mockSessionService
	credentials *mockCredentialsService
	settings    *mockSettingsService
}

// setupTestServices installs mock services and returns a cleanup function
// restoring the previous ones.
func setupTestServices() func() {
	_, cleanup := installTestServices()
	return cleanup
}

// installTestServices is setupTestServices that also returns the mocks.
func installTestServices() (*testServices, func()) {
	oldQuery := queryPipeline
	oldUpload := uploadOrchestrator
	oldDocument := documentService
	oldSession := sessionService
	oldCredentials := credentialsService
	oldSettings := settingsService

	mocks := &testServices{
		query:       &mockQueryPipeline{},
		upload:      &mockUploadOrchestrator{},
		documents:   newMockDocumentService(),
		session:     &mockSessionService{},
		credentials: &mockCredentialsService{},
		settings:    newMockSettingsService(),
	}
	SetServices(&Services{
		Query:       mocks.query,
		Upload:      mocks.upload,
		Document:    mocks.documents,
		Session:     mocks.session,
		Credentials: mocks.credentials,
		Settings:    mocks.settings,
	})

	return mocks, func() {
		queryPipeline = oldQuery
		uploadOrchestrator = oldUpload
		documentService = oldDocument
		sessionService = oldSession
		credentialsService = oldCredentials
		settingsService = oldSettings
	}
}

// clearServices sets every service to nil and returns a cleanup function.
func clearServices() func() {
	_, cleanup := installTestServices()
	queryPipeline = nil
	uploadOrchestrator = nil
	documentService = nil
	sessionService = nil
	credentialsService = nil
	settingsService = nil
	return cleanup
}
