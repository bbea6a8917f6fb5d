package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// mockDocumentBackend implements driven.DocumentBackend for tests.
type mockDocumentBackend struct {
	UploadFunc func(ctx context.Context, name string, size int64, content io.Reader, progress driven.ProgressFunc) (*domain.Document, error)
	ListFunc   func(ctx context.Context) ([]domain.Document, error)
	DeleteFunc func(ctx context.Context, id string) error

	mu      sync.Mutex
	deleted []string
}

func (m *mockDocumentBackend) Upload(
	ctx context.Context, name string, size int64, content io.Reader, progress driven.ProgressFunc,
) (*domain.Document, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, name, size, content, progress)
	}
	progress(50)
	progress(100)
	return &domain.Document{ID: "id-" + name, Name: name, ChunkCount: 1, UploadedAt: time.Now()}, nil
}

func (m *mockDocumentBackend) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockDocumentBackend) DeleteDocument(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, id)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockQueryBackend implements driven.QueryBackend for tests.
type mockQueryBackend struct {
	QueryFunc func(ctx context.Context, question string, topK int, dispatched func()) (*domain.QueryAnswer, error)

	mu    sync.Mutex
	calls int
	topK  int
}

func (m *mockQueryBackend) Query(
	ctx context.Context, question string, topK int, dispatched func(),
) (*domain.QueryAnswer, error) {
	m.mu.Lock()
	m.calls++
	m.topK = topK
	m.mu.Unlock()
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, question, topK, dispatched)
	}
	dispatched()
	return &domain.QueryAnswer{Answer: "42", Sources: []string{"a.txt"}, ResponseTimeMs: 10, Confidence: 90, ChunksUsed: 1}, nil
}

func (m *mockQueryBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// recordingObserver implements driving.Observer and records every event.
type recordingObserver struct {
	mu       sync.Mutex
	statuses []domain.PipelineStatus
	progress map[string][]int
	settled  []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{progress: make(map[string][]int)}
}

func (o *recordingObserver) StatusChanged(status domain.PipelineStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

func (o *recordingObserver) UploadProgress(filename string, percent int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress[filename] = append(o.progress[filename], percent)
}

func (o *recordingObserver) UploadSettled(filename string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settled = append(o.settled, filename)
}

func (o *recordingObserver) Statuses() []domain.PipelineStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.PipelineStatus(nil), o.statuses...)
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestSession builds a session over in-memory stores.
func newTestSession(opts ...SessionOption) *Session {
	return NewSession(memory.NewDocumentRegistry(), memory.NewConversationLog(), NewMetricsAggregator(), opts...)
}

// textFile builds a candidate file backed by a string.
func textFile(name, content string) domain.CandidateFile {
	return domain.CandidateFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// sizedFile builds a candidate file that reports the given size.
func sizedFile(name string, size int64) domain.CandidateFile {
	return domain.CandidateFile{
		Name: name,
		Size: size,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("x")), nil
		},
	}
}
