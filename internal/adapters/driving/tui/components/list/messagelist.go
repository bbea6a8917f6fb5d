// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// EmptyText is shown before the first question.
const EmptyText = "No messages yet. Upload .txt files with /upload <path>, then ask a question."

// FeedbackFunc looks up the vote recorded for a message.
type FeedbackFunc func(timestamp int64) (domain.Polarity, bool)

// MessageList renders the conversation, newest at the bottom.
type MessageList struct {
	messages []domain.Message
	feedback FeedbackFunc
	styles   *styles.Styles
	width    int
	height   int

	// offset is the number of lines scrolled up from the bottom.
	offset int
}

// NewMessageList creates a new message list component.
func NewMessageList(s *styles.Styles) *MessageList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MessageList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the message list.
func (l *MessageList) Init() tea.Cmd {
	return nil
}

// Update handles scrolling keys.
func (l *MessageList) Update(msg tea.Msg) (*MessageList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only scroll keys
		switch msg.Type {
		case tea.KeyPgUp:
			l.ScrollUp()
		case tea.KeyPgDown:
			l.ScrollDown()
		}
	}
	return l, nil
}

// View renders the visible window of the conversation.
func (l *MessageList) View() string {
	if len(l.messages) == 0 {
		return l.styles.Muted.Render(EmptyText)
	}

	lines := l.lines()
	end := len(lines) - l.offset
	start := end - l.height
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}

// lines renders every message and returns the flattened output.
func (l *MessageList) lines() []string {
	var lines []string
	for i := range l.messages {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(l.renderMessage(&l.messages[i]), "\n")...)
	}
	return lines
}

func (l *MessageList) renderMessage(msg *domain.Message) string {
	wrap := lipgloss.NewStyle().Width(l.contentWidth())

	if msg.Role == domain.RoleUser {
		return l.styles.UserLabel.Render("You") + "\n" + wrap.Render(msg.Content)
	}

	label := l.styles.AssistantLabel.Render("Assistant")
	body := l.styles.Normal.Render(wrap.Render(msg.Content))
	if msg.IsError {
		body = l.styles.Error.Render(wrap.Render(msg.Content))
	}

	parts := []string{label, body}
	if len(msg.Sources) > 0 {
		parts = append(parts, l.styles.Source.Render("Sources: "+strings.Join(msg.Sources, ", ")))
	}

	footer := msg.Footer()
	if marker := l.feedbackMarker(msg); marker != "" {
		if footer != "" {
			footer += " • "
		}
		footer += marker
	}
	if footer != "" {
		parts = append(parts, l.styles.Muted.Render(footer))
	}
	return strings.Join(parts, "\n")
}

func (l *MessageList) feedbackMarker(msg *domain.Message) string {
	if l.feedback == nil || !msg.Rateable() {
		return ""
	}
	polarity, ok := l.feedback(msg.Timestamp)
	if !ok {
		return ""
	}
	if polarity == domain.Positive {
		return "👍"
	}
	return "👎"
}

func (l *MessageList) contentWidth() int {
	if l.width < 20 {
		return 20
	}
	return l.width - 2
}

// SetMessages replaces the displayed conversation and jumps to the bottom.
func (l *MessageList) SetMessages(messages []domain.Message) {
	if len(messages) != len(l.messages) {
		l.offset = 0
	}
	l.messages = messages
	l.clampOffset()
}

// Messages returns the displayed conversation.
func (l *MessageList) Messages() []domain.Message {
	return l.messages
}

// SetFeedback sets the vote lookup used for feedback markers.
func (l *MessageList) SetFeedback(fn FeedbackFunc) {
	l.feedback = fn
}

// LastRateable returns the newest message that can receive feedback.
func (l *MessageList) LastRateable() (domain.Message, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Rateable() {
			return l.messages[i], true
		}
	}
	return domain.Message{}, false
}

// ScrollUp moves the window half a page towards older messages.
func (l *MessageList) ScrollUp() {
	l.offset += l.page()
	l.clampOffset()
}

// ScrollDown moves the window half a page towards newer messages.
func (l *MessageList) ScrollDown() {
	l.offset -= l.page()
	l.clampOffset()
}

// Offset returns how many lines the view is scrolled up from the bottom.
func (l *MessageList) Offset() int {
	return l.offset
}

func (l *MessageList) page() int {
	if l.height < 2 {
		return 1
	}
	return l.height / 2
}

func (l *MessageList) clampOffset() {
	maxOffset := len(l.lines()) - l.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// SetSize sets the list dimensions.
func (l *MessageList) SetSize(width, height int) {
	l.width = width
	if height < 1 {
		height = 1
	}
	l.height = height
	l.clampOffset()
}

// Width returns the current width.
func (l *MessageList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *MessageList) Height() int {
	return l.height
}
