package mocks

import (
	"context"
	"io"
	"sync"

	"docqa/internal/models"
)

type BackendMock struct {
	UploadFunc          func(ctx context.Context, filename string, content io.Reader) (*models.ActiveDocument, error)
	LoadDocumentFunc    func(ctx context.Context, filename string) (*models.ActiveDocument, error)
	QueryFunc           func(ctx context.Context, question string) (*models.AnswerPayload, error)
	CurrentDocumentFunc func(ctx context.Context) (*models.ActiveDocument, error)
	ResolveURLFunc      func(ref string) string

	mu    sync.Mutex
	calls map[string]int
}

func (m *BackendMock) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
}

// Calls reports how many times op ("upload", "load", "query", "current") was requested.
func (m *BackendMock) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *BackendMock) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *BackendMock) Upload(ctx context.Context, filename string, content io.Reader) (*models.ActiveDocument, error) {
	m.record("upload")
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, content)
	}
	return &models.ActiveDocument{Filename: filename}, nil
}

func (m *BackendMock) LoadDocument(ctx context.Context, filename string) (*models.ActiveDocument, error) {
	m.record("load")
	if m.LoadDocumentFunc != nil {
		return m.LoadDocumentFunc(ctx, filename)
	}
	return &models.ActiveDocument{Filename: filename}, nil
}

func (m *BackendMock) Query(ctx context.Context, question string) (*models.AnswerPayload, error) {
	m.record("query")
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, question)
	}
	return &models.AnswerPayload{Answer: "ok"}, nil
}

func (m *BackendMock) CurrentDocument(ctx context.Context) (*models.ActiveDocument, error) {
	m.record("current")
	if m.CurrentDocumentFunc != nil {
		return m.CurrentDocumentFunc(ctx)
	}
	return nil, nil
}

func (m *BackendMock) ResolveURL(ref string) string {
	if m.ResolveURLFunc != nil {
		return m.ResolveURLFunc(ref)
	}
	return ref
}
