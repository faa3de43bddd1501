package services

import (
	"context"
	"sync"

	"docqa/internal/events"
)

// Notifier owns the busy overlay and transient notices.
type Notifier struct {
	ctx     context.Context
	mu      sync.Mutex
	depth   int
	message string
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Startup(ctx context.Context) {
	n.ctx = ctx
}

// Busy shows the overlay with message and returns its release. Release is safe to
// call more than once; the overlay hides when the last open scope is released.
func (n *Notifier) Busy(message string) (release func()) {
	n.mu.Lock()
	n.depth++
	n.message = message
	evt := events.BusyEvent{Visible: true, Message: message}
	n.mu.Unlock()
	events.Emit(orBackground(n.ctx), events.Busy, evt)

	var once sync.Once
	return func() {
		once.Do(n.release)
	}
}

func (n *Notifier) release() {
	n.mu.Lock()
	if n.depth > 0 {
		n.depth--
	}
	evt := events.BusyEvent{Visible: n.depth > 0, Message: n.message}
	if n.depth == 0 {
		n.message = ""
		evt.Message = ""
	}
	n.mu.Unlock()
	events.Emit(orBackground(n.ctx), events.Busy, evt)
}

// State reports the overlay as the UI should currently show it.
func (n *Notifier) State() events.BusyEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return events.BusyEvent{Visible: n.depth > 0, Message: n.message}
}

func (n *Notifier) Success(message string) {
	ctx := orBackground(n.ctx)
	events.LogInfo(ctx, message)
	events.Emit(ctx, events.Notice, events.NewSuccess(message))
}

func (n *Notifier) Error(message string) {
	ctx := orBackground(n.ctx)
	events.LogError(ctx, message)
	events.Emit(ctx, events.Notice, events.NewError(message))
}
