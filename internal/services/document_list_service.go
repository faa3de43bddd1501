package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"docqa/internal/events"
	"docqa/internal/models"
	"docqa/internal/repositories"
)

// DocumentListService keeps the sidebar list of known documents. Filenames are
// unique; at most one entry is active.
type DocumentListService struct {
	ctx     context.Context
	repo    repositories.KnownDocumentRepository
	mu      sync.Mutex
	entries []models.DocumentListEntry
}

func NewDocumentListService(repo repositories.KnownDocumentRepository) *DocumentListService {
	return &DocumentListService{repo: repo}
}

func (s *DocumentListService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// Load seeds the list from the persisted known documents, keeping any entries
// already present and their order.
func (s *DocumentListService) Load() error {
	ctx := orBackground(s.ctx)
	docs, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load document list: %w", err)
	}

	s.mu.Lock()
	for _, d := range docs {
		name := NormalizeFilename(d.Filename)
		if name != "" && s.indexOf(name) < 0 {
			s.entries = append(s.entries, models.DocumentListEntry{Filename: name})
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	events.Emit(ctx, events.Documents, snapshot)
	return nil
}

// NormalizeFilename is the list key for a document name: surrounding whitespace
// is not part of it.
func NormalizeFilename(filename string) string {
	return strings.TrimSpace(filename)
}

// AddIfAbsent appends an inactive entry for filename unless one exists. It
// reports whether an entry was added.
func (s *DocumentListService) AddIfAbsent(filename string) bool {
	filename = NormalizeFilename(filename)
	if filename == "" {
		return false
	}
	ctx := orBackground(s.ctx)

	s.mu.Lock()
	if s.indexOf(filename) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.entries = append(s.entries, models.DocumentListEntry{Filename: filename})
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, filename)
	events.Emit(ctx, events.Documents, snapshot)
	return true
}

// MarkActive makes filename the only active entry. The UI receives one snapshot,
// so it never sees two active entries.
func (s *DocumentListService) MarkActive(filename string) {
	filename = NormalizeFilename(filename)

	s.mu.Lock()
	s.markLocked(filename)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	events.Emit(orBackground(s.ctx), events.Documents, snapshot)
}

// Activate adds filename if needed and makes it the only active entry in one
// step, emitting a single snapshot.
func (s *DocumentListService) Activate(filename string) {
	filename = NormalizeFilename(filename)
	if filename == "" {
		return
	}
	ctx := orBackground(s.ctx)

	s.mu.Lock()
	added := s.indexOf(filename) < 0
	if added {
		s.entries = append(s.entries, models.DocumentListEntry{Filename: filename})
	}
	s.markLocked(filename)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if added {
		s.persist(ctx, filename)
	}
	events.Emit(ctx, events.Documents, snapshot)
}

func (s *DocumentListService) persist(ctx context.Context, filename string) {
	if err := s.repo.Add(ctx, filename); err != nil {
		events.LogWarn(ctx, fmt.Sprintf("persist known document: %v", err))
	}
}

func (s *DocumentListService) markLocked(filename string) {
	for i := range s.entries {
		s.entries[i].IsActive = s.entries[i].Filename == filename
	}
}

// Entries returns the list in display order.
func (s *DocumentListService) Entries() []models.DocumentListEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *DocumentListService) indexOf(filename string) int {
	for i, e := range s.entries {
		if e.Filename == filename {
			return i
		}
	}
	return -1
}

func (s *DocumentListService) snapshotLocked() []models.DocumentListEntry {
	out := make([]models.DocumentListEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
