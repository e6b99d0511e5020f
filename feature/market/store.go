package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"market-tracker/feature/market/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTaxRatesNotFound is returned when no tax rates were uploaded for a world.
var ErrTaxRatesNotFound = errors.New("tax rates not found")

// Store is the GORM-backed persistence layer for market records. Reads are
// batched per (item, world set); writes are self-contained per call so no
// transaction ever spans two Store operations.
type Store struct {
	db *gorm.DB
}

// NewStore creates a market record store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the market record tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.Listing{},
		&models.Sale{},
		&models.MarketStatus{},
		&models.TaxRates{},
	)
}

// RetrieveSales fetches all sales for an item across the given worlds in a
// single query.
func (s *Store) RetrieveSales(ctx context.Context, itemID uint32, worldIDs []uint32) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.WithContext(ctx).
		Where("item_id = ? AND world_id IN ?", itemID, worldIDs).
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}
	return sales, nil
}

// RetrieveListings fetches all current listings for an item across the
// given worlds in a single query.
func (s *Store) RetrieveListings(ctx context.Context, itemID uint32, worldIDs []uint32) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Where("item_id = ? AND world_id IN ?", itemID, worldIDs).
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve listings: %w", err)
	}
	return listings, nil
}

// RetrieveStatuses fetches the per-world upload freshness rows for an item.
func (s *Store) RetrieveStatuses(ctx context.Context, itemID uint32, worldIDs []uint32) ([]models.MarketStatus, error) {
	var statuses []models.MarketStatus
	err := s.db.WithContext(ctx).
		Where("item_id = ? AND world_id IN ?", itemID, worldIDs).
		Find(&statuses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve market statuses: %w", err)
	}
	return statuses, nil
}

// ReplaceListings swaps the full current-listings set for (world, item)
// with rows and bumps the upload freshness marker. The swap runs in one
// transaction so readers never observe a half-replaced set.
func (s *Store) ReplaceListings(ctx context.Context, worldID, itemID uint32, rows []models.Listing) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("world_id = ? AND item_id = ?", worldID, itemID).
			Delete(&models.Listing{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].WorldID = worldID
			rows[i].ItemID = itemID
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return touchStatus(tx, worldID, itemID)
	})
	if err != nil {
		return fmt.Errorf("failed to replace listings: %w", err)
	}
	return nil
}

// MergeSales inserts sale entries for (world, item), silently dropping
// rows that duplicate an already-stored sale, and bumps the upload
// freshness marker.
func (s *Store) MergeSales(ctx context.Context, worldID, itemID uint32, rows []models.Sale) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			rows[i].WorldID = worldID
			rows[i].ItemID = itemID
		}
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&rows).Error; err != nil {
				return err
			}
		}
		return touchStatus(tx, worldID, itemID)
	})
	if err != nil {
		return fmt.Errorf("failed to merge sales: %w", err)
	}
	return nil
}

// UpsertTaxRates overwrites the stored tax rates for the given world.
func (s *Store) UpsertTaxRates(ctx context.Context, rates models.TaxRates) error {
	rates.UploadedAt = time.Now().Unix()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "world_id"}},
		UpdateAll: true,
	}).Create(&rates).Error
	if err != nil {
		return fmt.Errorf("failed to upsert tax rates: %w", err)
	}
	return nil
}

// TaxRates fetches the stored tax rates for one world.
func (s *Store) TaxRates(ctx context.Context, worldID uint32) (*models.TaxRates, error) {
	var rates models.TaxRates
	err := s.db.WithContext(ctx).
		Where("world_id = ?", worldID).
		First(&rates).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaxRatesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tax rates: %w", err)
	}
	return &rates, nil
}

// touchStatus records the upload time for (world, item) in unix ms.
func touchStatus(tx *gorm.DB, worldID, itemID uint32) error {
	status := models.MarketStatus{
		WorldID:        worldID,
		ItemID:         itemID,
		LastUploadTime: time.Now().UnixMilli(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "world_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_upload_time"}),
	}).Create(&status).Error
}
