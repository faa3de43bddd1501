package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"docqa/internal/apperr"
	"docqa/internal/events"
	"docqa/internal/models"
)

// MaxUploadBytes is the largest accepted upload, inclusive.
const MaxUploadBytes int64 = 50 * 1024 * 1024

var errUploadTooLarge = errors.New("upload exceeds the size limit")

// sizeCapReader fails the read that takes the total past MaxUploadBytes, whatever
// size the caller declared.
type sizeCapReader struct {
	r    io.Reader
	read int64
}

func (c *sizeCapReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.read > MaxUploadBytes {
		return 0, errUploadTooLarge
	}
	return n, err
}

// SessionService drives upload and selection, the only two ways the active
// document changes. Writers run one at a time, from request to activation.
type SessionService struct {
	ctx      context.Context
	writeMu  sync.Mutex
	state    *SessionState
	env      ClientProvider
	docs     *DocumentListService
	notifier *Notifier
	openFile func(ctx context.Context) (string, error)
}

type SessionOption func(*SessionService)

// WithFileDialog replaces the native open-file dialog.
func WithFileDialog(f func(ctx context.Context) (string, error)) SessionOption {
	return func(s *SessionService) {
		if f != nil {
			s.openFile = f
		}
	}
}

func NewSessionService(state *SessionState, env ClientProvider, docs *DocumentListService, notifier *Notifier, opts ...SessionOption) *SessionService {
	s := &SessionService{
		state:    state,
		env:      env,
		docs:     docs,
		notifier: notifier,
		openFile: openPDFDialog,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func openPDFDialog(ctx context.Context) (string, error) {
	return runtime.OpenFileDialog(ctx, runtime.OpenDialogOptions{
		Title:   "Select a PDF",
		Filters: []runtime.FileFilter{{DisplayName: "PDF documents (*.pdf)", Pattern: "*.pdf"}},
	})
}

// Snapshot reports the current session for the header and chat input.
func (s *SessionService) Snapshot() models.SessionSnapshot {
	return s.state.Snapshot()
}

// ChooseAndUpload opens the file dialog and uploads the chosen file. Cancelling
// the dialog is not an error.
func (s *SessionService) ChooseAndUpload() (models.SessionSnapshot, error) {
	path, err := s.openFile(orBackground(s.ctx))
	if err != nil {
		return s.state.Snapshot(), fmt.Errorf("open file dialog: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return s.state.Snapshot(), nil
	}
	return s.UploadPath(path)
}

// UploadPath uploads a local file. The size limit is checked from the file's
// metadata before it is read.
func (s *SessionService) UploadPath(path string) (models.SessionSnapshot, error) {
	msgs := s.env.Messages()
	info, err := os.Stat(path)
	if err != nil {
		s.notifier.Error(msgs.UploadFailed)
		return s.state.Snapshot(), apperr.Validation("file", fmt.Sprintf("cannot read %s: %v", path, err))
	}
	if info.IsDir() {
		s.notifier.Error(msgs.UploadFailed)
		return s.state.Snapshot(), apperr.Validation("file", fmt.Sprintf("%s is a directory", path))
	}
	if info.Size() > MaxUploadBytes {
		return s.rejectOversized(info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		s.notifier.Error(msgs.UploadFailed)
		return s.state.Snapshot(), apperr.Validation("file", fmt.Sprintf("cannot open %s: %v", path, err))
	}
	defer f.Close()

	return s.UploadFile(filepath.Base(path), info.Size(), f)
}

// UploadFile sends content to the backend and, on success, makes it the active
// document. Files over MaxUploadBytes are rejected without a request.
func (s *SessionService) UploadFile(filename string, size int64, content io.Reader) (models.SessionSnapshot, error) {
	ctx := orBackground(s.ctx)
	msgs := s.env.Messages()

	if strings.TrimSpace(filename) == "" || content == nil {
		return s.state.Snapshot(), apperr.Validation("file", "no file selected")
	}
	if size > MaxUploadBytes {
		return s.rejectOversized(size)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	release := s.notifier.Busy(msgs.UploadBusy)
	defer release()

	doc, err := s.env.Backend().Upload(ctx, filename, &sizeCapReader{r: content})
	if errors.Is(err, errUploadTooLarge) {
		return s.rejectOversized(MaxUploadBytes + 1)
	}
	if err != nil {
		s.reportFailure(ctx, "upload "+filename, err, msgs.UploadFailed)
		return s.state.Snapshot(), err
	}

	s.activate(ctx, doc, filename)
	s.notifier.Success(msgs.UploadSuccess)
	return s.state.Snapshot(), nil
}

// Select asks the backend to load a known document. On failure nothing changes.
func (s *SessionService) Select(filename string) (models.SessionSnapshot, error) {
	ctx := orBackground(s.ctx)
	msgs := s.env.Messages()

	filename = strings.TrimSpace(filename)
	if filename == "" {
		return s.state.Snapshot(), apperr.Validation("filename", "filename is required")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	release := s.notifier.Busy(msgs.LoadBusy)
	defer release()

	doc, err := s.env.Backend().LoadDocument(ctx, filename)
	if err != nil {
		s.reportFailure(ctx, "load "+filename, err, msgs.LoadFailed)
		return s.state.Snapshot(), err
	}

	s.activate(ctx, doc, filename)
	s.notifier.Success(msgs.LoadSuccess(filename))
	return s.state.Snapshot(), nil
}

// Restore binds the session to whatever document the backend already has loaded.
// It only fills an empty session: once an upload or selection has bound a
// document, a late reply is dropped. Failures only get logged; the session then
// starts without a document.
func (s *SessionService) Restore() models.SessionSnapshot {
	ctx := orBackground(s.ctx)
	doc, err := s.env.Backend().CurrentDocument(ctx)
	if err != nil {
		events.LogInfo(ctx, fmt.Sprintf("no document to restore: %v", err))
		return s.state.Snapshot()
	}
	if doc == nil || NormalizeFilename(doc.Filename) == "" {
		return s.state.Snapshot()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if current := s.state.Active(); current != nil {
		events.LogInfo(ctx, fmt.Sprintf("skip restoring %s: %s is already active", doc.Filename, current.Filename))
		return s.state.Snapshot()
	}
	s.activate(ctx, doc, "")
	return s.state.Snapshot()
}

// activate binds doc under the normalized filename, so the slot and the list
// agree on the key. requested stands in when the reply names no file. Callers
// hold writeMu.
func (s *SessionService) activate(ctx context.Context, doc *models.ActiveDocument, requested string) {
	bound := *doc
	bound.Filename = NormalizeFilename(doc.Filename)
	if bound.Filename == "" {
		bound.Filename = NormalizeFilename(requested)
	}
	s.state.setActive(bound)
	s.docs.Activate(bound.Filename)

	events.Emit(ctx, events.Session, s.state.Snapshot())
	events.Emit(ctx, events.ChatInput, events.ChatInputEvent{
		Enabled:     s.state.ChatEnabled(),
		Focus:       true,
		Placeholder: s.env.Messages().InputPlaceholder,
	})
}

func (s *SessionService) rejectOversized(size int64) (models.SessionSnapshot, error) {
	s.notifier.Error(s.env.Messages().FileTooLarge)
	return s.state.Snapshot(), apperr.Validation("file", fmt.Sprintf("%d bytes exceeds the %d byte limit", size, MaxUploadBytes))
}

// reportFailure turns a backend error into an error notice. Server messages are
// shown as-is; transport details are logged and replaced by a generic message.
func (s *SessionService) reportFailure(ctx context.Context, op string, err error, fallback string) {
	switch {
	case apperr.IsApplication(err):
		msg := apperr.ServerMessage(err)
		if msg == "" {
			msg = fallback
		}
		s.notifier.Error(msg)
	default:
		events.LogError(ctx, fmt.Sprintf("%s: %v", op, err))
		s.notifier.Error(s.env.Messages().Connectivity)
	}
}
