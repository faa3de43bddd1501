package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"github.com/yargevad/filepathx"

	"docqa/internal/apperr"
	"docqa/internal/events"
	"docqa/internal/utils"
)

// ImportResult is the outcome for one file of a batch import.
type ImportResult struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// ImportService uploads several PDFs one after another. Uploads never overlap,
// and the last successful one ends up as the active document.
type ImportService struct {
	ctx       context.Context
	sessions  *SessionService
	notifier  *Notifier
	env       ClientProvider
	openFiles    func(ctx context.Context) ([]string, error)
	openManifest func(ctx context.Context) (string, error)
}

type ImportOption func(*ImportService)

// WithFilesDialog replaces the native multi-select dialog.
func WithFilesDialog(f func(ctx context.Context) ([]string, error)) ImportOption {
	return func(s *ImportService) {
		if f != nil {
			s.openFiles = f
		}
	}
}

// WithManifestDialog replaces the native dialog used to pick a manifest file.
func WithManifestDialog(f func(ctx context.Context) (string, error)) ImportOption {
	return func(s *ImportService) {
		if f != nil {
			s.openManifest = f
		}
	}
}

func NewImportService(sessions *SessionService, notifier *Notifier, env ClientProvider, opts ...ImportOption) *ImportService {
	s := &ImportService{
		sessions:     sessions,
		notifier:     notifier,
		env:          env,
		openFiles:    openPDFsDialog,
		openManifest: openManifestDialog,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ImportService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func openPDFsDialog(ctx context.Context) ([]string, error) {
	return runtime.OpenMultipleFilesDialog(ctx, runtime.OpenDialogOptions{
		Title:   "Select PDFs",
		Filters: []runtime.FileFilter{{DisplayName: "PDF documents (*.pdf)", Pattern: "*.pdf"}},
	})
}

func openManifestDialog(ctx context.Context) (string, error) {
	return runtime.OpenFileDialog(ctx, runtime.OpenDialogOptions{
		Title:   "Select an import list",
		Filters: []runtime.FileFilter{{DisplayName: "Text files (*.txt)", Pattern: "*.txt"}},
	})
}

// ImportGlob uploads every PDF matching pattern. "**" matches across directories.
func (s *ImportService) ImportGlob(pattern string) ([]ImportResult, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, apperr.Validation("pattern", "pattern is required")
	}
	matches, err := filepathx.Glob(pattern)
	if err != nil {
		return nil, apperr.Validation("pattern", fmt.Sprintf("invalid pattern %q: %v", pattern, err))
	}

	pdfs := onlyPDFs(matches)
	if len(pdfs) == 0 {
		s.notifier.Error(s.env.Messages().ImportNoMatches)
		return []ImportResult{}, nil
	}
	sort.Strings(pdfs)
	return s.importPaths(pdfs), nil
}

// ImportManifest uploads the files listed in a text manifest, one path or glob
// per line, in manifest order. Relative entries resolve against the manifest's
// directory; "#" starts a comment line. A file listed twice is uploaded once.
func (s *ImportService) ImportManifest(manifestPath string) ([]ImportResult, error) {
	lines, err := utils.ReadNonEmptyLines(manifestPath)
	if err != nil {
		return nil, apperr.Validation("manifest", fmt.Sprintf("cannot read %s: %v", manifestPath, err))
	}

	base := filepath.Dir(manifestPath)
	seen := make(map[string]bool)
	var pdfs []string
	for _, line := range lines {
		entry := line
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(base, entry)
		}
		candidates := []string{entry}
		if strings.ContainsAny(entry, "*?[") {
			matches, err := filepathx.Glob(entry)
			if err != nil {
				return nil, apperr.Validation("manifest", fmt.Sprintf("invalid pattern %q: %v", line, err))
			}
			sort.Strings(matches)
			candidates = matches
		}
		for _, p := range onlyPDFs(candidates) {
			if !seen[p] {
				seen[p] = true
				pdfs = append(pdfs, p)
			}
		}
	}
	if len(pdfs) == 0 {
		s.notifier.Error(s.env.Messages().ImportNoMatches)
		return []ImportResult{}, nil
	}
	return s.importPaths(pdfs), nil
}

func onlyPDFs(paths []string) []string {
	var out []string
	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), ".pdf") {
			out = append(out, p)
		}
	}
	return out
}

// ChooseAndImport opens a multi-select dialog and uploads the chosen files.
func (s *ImportService) ChooseAndImport() ([]ImportResult, error) {
	paths, err := s.openFiles(orBackground(s.ctx))
	if err != nil {
		return nil, fmt.Errorf("open files dialog: %w", err)
	}
	return s.importPaths(paths), nil
}

// ChooseManifestAndImport picks a manifest with a dialog and imports it.
// Cancelling the dialog is not an error.
func (s *ImportService) ChooseManifestAndImport() ([]ImportResult, error) {
	path, err := s.openManifest(orBackground(s.ctx))
	if err != nil {
		return nil, fmt.Errorf("open manifest dialog: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return []ImportResult{}, nil
	}
	return s.ImportManifest(path)
}

func (s *ImportService) importPaths(paths []string) []ImportResult {
	ctx := orBackground(s.ctx)
	msgs := s.env.Messages()
	total := len(paths)
	succeeded := 0
	results := make([]ImportResult, 0, total)
	for i, p := range paths {
		name := filepath.Base(p)
		events.Emit(ctx, events.ImportState, events.ImportEvent{
			Index:     i + 1,
			Total:     total,
			Filename:  name,
			Succeeded: succeeded,
			Message:   msgs.ImportProgress(i+1, total, name),
		})

		res := ImportResult{Path: p, Filename: name, OK: true}
		if _, err := s.sessions.UploadPath(p); err != nil {
			res.OK = false
			res.Error = err.Error()
		} else {
			succeeded++
		}
		results = append(results, res)
	}
	events.Emit(ctx, events.ImportState, events.ImportEvent{
		Index:     total,
		Total:     total,
		Succeeded: succeeded,
		Done:      true,
		Message:   msgs.ImportDone(succeeded, total),
	})
	return results
}
