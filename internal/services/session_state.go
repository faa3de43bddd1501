package services

import (
	"sync"

	"docqa/internal/models"
)

// SessionState is the single active-document slot plus the in-flight query flag.
// Only SessionService writes the document; QueryService only toggles inFlight.
type SessionState struct {
	mu       sync.RWMutex
	active   *models.ActiveDocument
	inFlight bool
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

// Active returns a copy of the active document, or nil.
func (s *SessionState) Active() *models.ActiveDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil
	}
	doc := *s.active
	return &doc
}

func (s *SessionState) setActive(doc models.ActiveDocument) {
	s.mu.Lock()
	s.active = &doc
	s.mu.Unlock()
}

// ChatEnabled is true when a document is bound and no question is in flight.
func (s *SessionState) ChatEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active != nil && !s.inFlight
}

// beginQuery claims the chat input. It fails when the input is disabled.
func (s *SessionState) beginQuery() (release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.inFlight {
		return nil, false
	}
	s.inFlight = true
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.inFlight = false
			s.mu.Unlock()
		})
	}, true
}

func (s *SessionState) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := models.SessionSnapshot{
		State:       models.StateNoDocument,
		ChatEnabled: s.active != nil && !s.inFlight,
	}
	if s.active != nil {
		doc := *s.active
		snap.Document = &doc
		snap.State = models.StateDocumentActive
	}
	return snap
}
