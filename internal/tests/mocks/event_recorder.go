package mocks

import (
	"context"
	"sync"
	"testing"

	"docqa/internal/events"
)

type RecordedEvent struct {
	Name    string
	Payload any
}

// EventRecorder captures everything sent through events.Emit for the duration of a test.
type EventRecorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func NewEventRecorder(t *testing.T) *EventRecorder {
	t.Helper()
	r := &EventRecorder{}
	events.SetCustomEmitter(func(ctx context.Context, name string, payload any) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, RecordedEvent{Name: name, Payload: payload})
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })
	return r
}

// Of returns the payloads emitted under name, oldest first.
func (r *EventRecorder) Of(name string) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []any
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e.Payload)
		}
	}
	return out
}

// Last returns the most recent payload emitted under name, or nil.
func (r *EventRecorder) Last(name string) any {
	all := r.Of(name)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func (r *EventRecorder) Notices() []events.NoticeEvent {
	var out []events.NoticeEvent
	for _, p := range r.Of(events.Notice) {
		if n, ok := p.(events.NoticeEvent); ok {
			out = append(out, n)
		}
	}
	return out
}

func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
