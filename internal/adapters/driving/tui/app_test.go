package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return NewPorts(
		&MockQueryPipeline{},
		&MockUploadOrchestrator{},
		&MockDocumentService{Docs: []domain.Document{{ID: "1", Name: "report.txt", ChunkCount: 4}}},
		&MockSessionService{},
	)
}

func newTestApp(t *testing.T) (*App, *Ports) {
	t.Helper()
	ports := newTestPorts()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, ports
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewChat, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_SubscribesObserver(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)
	require.NoError(t, err)

	session := ports.Session.(*MockSessionService)
	require.Len(t, session.Observers, 1)
	assert.Equal(t, app.observer, session.Observers[0])
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := newTestPorts()
	ports.Query = nil

	app, err := NewApp(ports)

	assert.ErrorIs(t, err, ErrMissingQueryPipeline)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Chat(t *testing.T) {
	app, _ := newTestApp(t)

	out := app.View()

	assert.Contains(t, out, "docqa")
	assert.Contains(t, out, "Ask a question")
}

func TestApp_Update_KeyMsg_CtrlC(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_NavigateToDocuments(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.Contains(t, app.View(), "report.txt")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewChat, app.CurrentView())
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	out := app.View()
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "/upload <paths>")
	assert.Contains(t, out, "clear chat")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewChat, app.CurrentView())
}

func TestApp_HelpIgnoresOtherKeys(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
}

func TestApp_DocumentsLoadedReachesBothViews(t *testing.T) {
	app, ports := newTestApp(t)
	docs := ports.Document.(*MockDocumentService)
	docs.Docs = append(docs.Docs, domain.Document{ID: "2", Name: "notes.txt"})
	ports.Session.(*MockSessionService).Current = domain.SessionStats{TotalDocs: 2}

	app.Update(messages.DocumentsLoaded{Documents: docs.Docs})

	assert.Len(t, app.documentsView.Documents(), 2)
	assert.Contains(t, app.View(), "2 docs")
}

func TestApp_SessionEventsGoToChat(t *testing.T) {
	app, ports := newTestApp(t)
	ports.Session.(*MockSessionService).Msgs = []domain.Message{
		{Role: domain.RoleUser, Content: "hello there", Timestamp: 1},
	}

	_, cmd := app.Update(messages.StatusChanged{Status: domain.StatusProcessing})

	assert.NotNil(t, cmd)
	assert.Contains(t, app.View(), "hello there")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)
	err := errors.New("something failed")

	app.Update(messages.ErrorOccurred{Err: err})

	assert.Equal(t, err, app.Err())
	assert.Contains(t, app.View(), "something failed")
}

func TestApp_ErrorOccurredInDocuments(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewDocuments})

	app.Update(messages.ErrorOccurred{Err: errors.New("delete failed")})

	assert.Contains(t, app.View(), "delete failed")
}

func TestApp_BannerShownInChat(t *testing.T) {
	app, ports := newTestApp(t)
	ports.Session.(*MockSessionService).Text = "failed to load documents: connection refused"

	assert.Contains(t, app.View(), "failed to load documents")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, app.View(), "failed to load documents")
}
