// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// Bar displays the pipeline status, session statistics and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	status  domain.PipelineStatus
	stats   domain.SessionStats
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Subtitle

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		status:  domain.StatusReady,
		hints:   km.ShortHelp(),
		width:   80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while the pipeline is busy.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok && b.status.Busy() {
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(tick)
		return b, cmd
	}
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderStatus() + "  " + b.renderStats()
	right := b.renderHints()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderStatus() string {
	if b.status.Busy() {
		return b.spinner.View() + " " + b.styles.Subtitle.Render(b.status.Description())
	}
	return b.styles.Success.Render(b.status.Description())
}

func (b *Bar) renderStats() string {
	parts := []string{
		fmt.Sprintf("%d docs", b.stats.TotalDocs),
		fmt.Sprintf("%d queries", b.stats.TotalQueries),
		fmt.Sprintf("avg %dms", b.stats.AvgResponseTimeRounded()),
		fmt.Sprintf("%d%% helpful", b.stats.PositiveRatePercent),
	}
	if b.stats.FailedQueries > 0 {
		parts = append(parts, b.styles.Error.Render(fmt.Sprintf("%d failed", b.stats.FailedQueries)))
	}
	return b.styles.Muted.Render(strings.Join(parts, " • "))
}

func (b *Bar) renderHints() string {
	hints := make([]string, 0, len(b.hints))
	for _, k := range b.hints {
		h := k.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetStatus records the pipeline status. It returns the spinner tick when
// the pipeline becomes busy.
func (b *Bar) SetStatus(status domain.PipelineStatus) tea.Cmd {
	wasBusy := b.status.Busy()
	b.status = status
	if status.Busy() && !wasBusy {
		return b.spinner.Tick
	}
	return nil
}

// Status returns the displayed pipeline status.
func (b *Bar) Status() domain.PipelineStatus {
	return b.status
}

// SetStats records the session statistics.
func (b *Bar) SetStats(stats domain.SessionStats) {
	b.stats = stats
}

// Stats returns the displayed statistics.
func (b *Bar) Stats() domain.SessionStats {
	return b.stats
}

// SetHints replaces the keybinding hints.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
