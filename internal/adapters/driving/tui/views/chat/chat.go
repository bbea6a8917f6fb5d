// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// CommandHelp lists the slash commands understood by the input.
const CommandHelp = "/upload <paths>  /docs  /clear  /good  /bad  /help  /quit"

// ExpandFunc resolves the paths given to /upload into candidate files.
type ExpandFunc func(paths []string) ([]domain.CandidateFile, error)

// View is the conversation view: message list, upload progress,
// error banner, question input and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	list      *list.MessageList
	statusbar *status.Bar
	bar       progress.Model

	query   driving.QueryPipeline
	upload  driving.UploadOrchestrator
	session driving.SessionService
	expand  ExpandFunc
	ctx     context.Context

	width  int
	height int
	ready  bool

	// notice is local feedback that is not a session error.
	notice string
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	query driving.QueryPipeline,
	upload driving.UploadOrchestrator,
	session driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	messageList := list.NewMessageList(s)
	if session != nil {
		messageList.SetFeedback(session.Feedback)
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionInput(s),
		list:      messageList,
		statusbar: status.NewBar(s, km),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		query:     query,
		upload:    upload,
		session:   session,
		expand:    filesystem.Expand,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithExpander overrides how /upload resolves paths.
func (v *View) WithExpander(fn ExpandFunc) *View {
	v.expand = fn
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	if v.session == nil {
		return v.input.Init()
	}
	return tea.Batch(v.input.Init(), v.statusbar.SetStatus(v.session.Status()))
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StatusChanged:
		cmd := v.statusbar.SetStatus(msg.Status)
		v.Refresh()
		return v, cmd

	case messages.UploadProgress, messages.UploadSettled:
		v.Refresh()
		return v, nil

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.UploadCompleted:
		v.handleUploadCompleted(msg)
		return v, nil

	case messages.FeedbackRecorded:
		if msg.Err != nil {
			v.notice = msg.Err.Error()
		}
		v.Refresh()
		return v, nil

	case messages.DocumentsLoaded, messages.DocumentDeleted, messages.DocumentsCleared:
		v.Refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.notice = msg.Err.Error()
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Submit):
		return v, v.submit(v.input.Take())

	case keymap.Matches(k, v.keymap.Dismiss):
		v.dismiss()
		return v, nil

	case keymap.Matches(k, v.keymap.ScrollUp):
		v.list.ScrollUp()
		return v, nil

	case keymap.Matches(k, v.keymap.ScrollDown):
		v.list.ScrollDown()
		return v, nil

	case keymap.Matches(k, v.keymap.ClearChat):
		v.clearChat()
		return v, nil

	case keymap.Matches(k, v.keymap.Documents):
		return v, changeView(messages.ViewDocuments)

	case keymap.Matches(k, v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit dispatches a line of input as a command or a question.
func (v *View) submit(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	v.notice = ""
	if strings.HasPrefix(text, "/") {
		return v.runCommand(text)
	}
	return v.ask(text)
}

func (v *View) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/upload":
		if len(fields) < 2 {
			v.notice = "usage: /upload <file or directory>..."
			return nil
		}
		return v.uploadPaths(fields[1:])
	case "/docs":
		return changeView(messages.ViewDocuments)
	case "/clear":
		v.clearChat()
		return nil
	case "/good":
		return v.rateLast(domain.Positive)
	case "/bad":
		return v.rateLast(domain.Negative)
	case "/help":
		return changeView(messages.ViewHelp)
	case "/quit", "/exit":
		return tea.Quit
	}
	v.notice = fmt.Sprintf("%v: %s (try %s)", ErrUnknownCommand, fields[0], CommandHelp)
	return nil
}

func (v *View) ask(question string) tea.Cmd {
	pipeline := v.query
	ctx := v.ctx
	return func() tea.Msg {
		if pipeline == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryPipeline}
		}
		exchange, err := pipeline.Submit(ctx, question)
		return messages.QueryCompleted{Exchange: exchange, Err: err}
	}
}

func (v *View) uploadPaths(paths []string) tea.Cmd {
	orchestrator := v.upload
	expand := v.expand
	ctx := v.ctx
	return func() tea.Msg {
		if orchestrator == nil {
			return messages.ErrorOccurred{Err: ErrNoUploadOrchestrator}
		}
		files, err := expand(paths)
		if err != nil {
			return messages.UploadCompleted{Err: err}
		}
		result, err := orchestrator.Submit(ctx, files)
		return messages.UploadCompleted{Result: result, Err: err}
	}
}

func (v *View) rateLast(polarity domain.Polarity) tea.Cmd {
	msg, ok := v.list.LastRateable()
	if !ok || v.session == nil {
		v.notice = "no answer to rate yet"
		return nil
	}
	session := v.session
	return func() tea.Msg {
		err := session.RecordFeedback(msg.Timestamp, polarity)
		return messages.FeedbackRecorded{Timestamp: msg.Timestamp, Polarity: polarity, Err: err}
	}
}

func (v *View) clearChat() {
	if v.session != nil {
		v.session.ClearChat()
	}
	v.notice = ""
	v.Refresh()
}

func (v *View) dismiss() {
	if v.session != nil && v.session.Banner() != "" {
		v.session.DismissBanner()
		return
	}
	v.notice = ""
}

func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Err != nil {
		v.notice = describe(msg.Err)
	}
	v.Refresh()
}

func (v *View) handleUploadCompleted(msg messages.UploadCompleted) {
	switch {
	case msg.Err != nil:
		v.notice = describe(msg.Err)
	case msg.Result != nil:
		v.notice = fmt.Sprintf("Uploaded %d of %d files", len(msg.Result.Accepted), msg.Result.Total())
	}
	v.Refresh()
}

// describe turns a rejected request into the text shown under the input.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrPipelineBusy):
		return "Please wait for the current operation to finish"
	case errors.Is(err, domain.ErrNoDocuments):
		return "Upload a document before asking a question"
	case errors.Is(err, domain.ErrEmptyBatch):
		return "No files to upload"
	}
	return err.Error()
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// Refresh re-reads the session state shown by the view.
func (v *View) Refresh() {
	if v.session == nil {
		return
	}
	v.list.SetMessages(v.session.Messages())
	v.statusbar.SetStats(v.session.Stats())
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("docqa"), "")
	sections = append(sections, v.list.View(), "")

	if bars := v.renderProgress(); bars != "" {
		sections = append(sections, bars, "")
	}
	if banner := v.Banner(); banner != "" {
		sections = append(sections, v.styles.Banner.Render(banner+"  (esc to dismiss)"))
	}
	if v.notice != "" {
		sections = append(sections, v.styles.Warning.Render(v.notice))
	}

	sections = append(sections, v.input.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderProgress() string {
	if v.session == nil {
		return ""
	}
	pending := v.session.Progress()
	if len(pending) == 0 {
		return ""
	}

	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		percent := float64(pending[name]) / 100
		lines = append(lines, fmt.Sprintf("%-24s %s", truncate(name, 24), v.bar.ViewAs(percent)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetSize(width, height-10)
	v.statusbar.SetWidth(width)
	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}
	v.bar.Width = barWidth
}

// Banner returns the session error text.
func (v *View) Banner() string {
	if v.session == nil {
		return ""
	}
	return v.session.Banner()
}

// Notice returns the local feedback text.
func (v *View) Notice() string {
	return v.notice
}

// Input returns the current input value.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the current input value.
func (v *View) SetInput(value string) {
	v.input.SetValue(value)
}

// Messages returns the displayed conversation.
func (v *View) Messages() []domain.Message {
	return v.list.Messages()
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
