package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"docqa/internal/models"
)

type KnownDocumentRepository interface {
	List(ctx context.Context) ([]models.KnownDocument, error)
	Add(ctx context.Context, filename string) error
}

type knownDocumentRepository struct {
	db *gorm.DB
}

func NewKnownDocumentRepository(db *gorm.DB) KnownDocumentRepository {
	return &knownDocumentRepository{db: db}
}

// List returns documents in the order they were first seen.
func (r *knownDocumentRepository) List(ctx context.Context) ([]models.KnownDocument, error) {
	var docs []models.KnownDocument
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("listing known documents: %w", err)
	}
	return docs, nil
}

// Add records filename; adding a known filename is a no-op.
func (r *knownDocumentRepository) Add(ctx context.Context, filename string) error {
	if filename == "" {
		return fmt.Errorf("filename is required")
	}
	doc := models.KnownDocument{Filename: filename}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "filename"}},
		DoNothing: true,
	}).Create(&doc).Error; err != nil {
		return fmt.Errorf("adding known document %q: %w", filename, err)
	}
	return nil
}
