package upload

import (
	"context"
	"errors"
	"fmt"

	"market-tracker/feature/upload/models"

	"gorm.io/gorm"
)

// ErrSourceNotFound is returned when no trusted source matches an API key
// digest. It maps to a 401; the upload must cause no writes.
var ErrSourceNotFound = errors.New("trusted source not found")

// Store is the persistence layer for trusted upload sources.
type Store struct {
	db *gorm.DB
}

// NewStore creates a trusted source store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the trusted source table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&models.TrustedSource{})
}

// Lookup fetches a trusted source by API key digest.
func (s *Store) Lookup(ctx context.Context, apiKeyHash string) (*models.TrustedSource, error) {
	var source models.TrustedSource
	err := s.db.WithContext(ctx).
		Where("api_key_hash = ?", apiKeyHash).
		First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up trusted source: %w", err)
	}
	return &source, nil
}

// Create registers a new trusted source.
func (s *Store) Create(ctx context.Context, source *models.TrustedSource) error {
	if err := s.db.WithContext(ctx).Create(source).Error; err != nil {
		return fmt.Errorf("failed to create trusted source: %w", err)
	}
	return nil
}

// IncrementUploadCount bumps a source's upload counter by one. The
// increment is a single UPDATE so concurrent uploads never lose counts.
func (s *Store) IncrementUploadCount(ctx context.Context, apiKeyHash string) error {
	result := s.db.WithContext(ctx).
		Model(&models.TrustedSource{}).
		Where("api_key_hash = ?", apiKeyHash).
		Update("upload_count", gorm.Expr("upload_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to increment upload count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSourceNotFound
	}
	return nil
}
