package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// Ensure Observer implements the interface.
var _ driving.Observer = (*Observer)(nil)

// Observer forwards session events into a running Bubbletea program.
// Events that arrive before Attach are dropped; the views re-read session
// state on every render.
type Observer struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewObserver creates a detached observer.
func NewObserver() *Observer {
	return &Observer{}
}

// Attach sets the function used to deliver messages, typically (*tea.Program).Send.
func (o *Observer) Attach(send func(tea.Msg)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.send = send
}

// Detach stops delivery.
func (o *Observer) Detach() {
	o.Attach(nil)
}

// StatusChanged implements driving.Observer.
func (o *Observer) StatusChanged(status domain.PipelineStatus) {
	o.dispatch(messages.StatusChanged{Status: status})
}

// UploadProgress implements driving.Observer.
func (o *Observer) UploadProgress(filename string, percent int) {
	o.dispatch(messages.UploadProgress{Filename: filename, Percent: percent})
}

// UploadSettled implements driving.Observer.
func (o *Observer) UploadSettled(filename string) {
	o.dispatch(messages.UploadSettled{Filename: filename})
}

func (o *Observer) dispatch(msg tea.Msg) {
	o.mu.RLock()
	send := o.send
	o.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}
