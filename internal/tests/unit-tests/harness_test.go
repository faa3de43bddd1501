package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"docqa/internal/services"
	"docqa/internal/tests/mocks"
)

// harness wires the session services the same way the app does, against a mock backend.
type harness struct {
	backend  *mocks.BackendMock
	repo     *mocks.KnownDocumentRepositoryMock
	events   *mocks.EventRecorder
	env      *mocks.ClientProviderMock
	state    *services.SessionState
	notifier *services.Notifier
	docs     *services.DocumentListService
	sessions *services.SessionService
	convo    *services.Conversation
	panel    *services.ReferencePanel
	queries  *services.QueryService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		backend: &mocks.BackendMock{},
		repo:    &mocks.KnownDocumentRepositoryMock{},
		events:  mocks.NewEventRecorder(t),
	}
	h.env = &mocks.ClientProviderMock{API: h.backend, Locale: "en"}
	env := h.env

	h.state = services.NewSessionState()
	h.notifier = services.NewNotifier()
	h.docs = services.NewDocumentListService(h.repo)
	h.sessions = services.NewSessionService(h.state, env, h.docs, h.notifier)
	h.convo = services.NewConversation(env)
	h.panel = services.NewReferencePanel(env)
	h.queries = services.NewQueryService(h.state, env, h.convo, h.panel, h.notifier)

	ctx := context.Background()
	h.notifier.Startup(ctx)
	h.docs.Startup(ctx)
	h.sessions.Startup(ctx)
	h.convo.Startup(ctx)
	h.panel.Startup(ctx)
	h.queries.Startup(ctx)
	return h
}

// activate binds a document through a successful selection.
func (h *harness) activate(t *testing.T, filename string) {
	t.Helper()
	if _, err := h.sessions.Select(filename); err != nil {
		t.Fatalf("select %s: %v", filename, err)
	}
	h.events.Reset()
}

// assertSessionConsistent checks that the active document, the single active
// list entry and the chat input agree.
func assertSessionConsistent(t *testing.T, h *harness) {
	t.Helper()
	snap := h.state.Snapshot()
	var active []string
	for _, e := range h.docs.Entries() {
		if e.IsActive {
			active = append(active, e.Filename)
		}
	}
	if snap.Document == nil {
		assert.Empty(t, active, "no document is bound but an entry is active")
		assert.False(t, snap.ChatEnabled)
		return
	}
	assert.Equal(t, []string{snap.Document.Filename}, active, "active entry must match the bound document")
	assert.True(t, snap.ChatEnabled)
}
