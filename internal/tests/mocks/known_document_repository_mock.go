package mocks

import (
	"context"

	"docqa/internal/models"
)

type KnownDocumentRepositoryMock struct {
	ListFunc func(ctx context.Context) ([]models.KnownDocument, error)
	AddFunc  func(ctx context.Context, filename string) error

	Added []string
}

func (m *KnownDocumentRepositoryMock) List(ctx context.Context) ([]models.KnownDocument, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *KnownDocumentRepositoryMock) Add(ctx context.Context, filename string) error {
	m.Added = append(m.Added, filename)
	if m.AddFunc != nil {
		return m.AddFunc(ctx, filename)
	}
	return nil
}
