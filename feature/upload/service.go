package upload

import (
	"context"
	"fmt"

	"market-tracker/core/gamedata"
	"market-tracker/core/hashing"
	"market-tracker/feature/extra"
	"market-tracker/feature/market"
	"market-tracker/feature/upload/models"

	"go.uber.org/zap"
)

// Service authenticates uploads and drives them through the behavior
// chain.
type Service struct {
	store    *Store
	chain    *Chain
	gameData gamedata.Provider
	logger   *zap.Logger
}

// NewService creates an upload service with the standard behavior chain:
// source crediting, upload counters, listings, sales, tax rates, and the
// content ID mapping, in that order.
func NewService(store *Store, marketStore *market.Store, extraStore *extra.Store, gameData gamedata.Provider, logger *zap.Logger) *Service {
	chain := NewChain(logger,
		&sourceIncrement{store: store, logger: logger},
		&extraCounters{extra: extraStore},
		&listings{market: marketStore, extra: extraStore},
		&sales{market: marketStore, extra: extraStore},
		&taxRates{market: marketStore},
		&contentID{extra: extraStore},
	)
	return &Service{store: store, chain: chain, gameData: gameData, logger: logger}
}

// Authenticate resolves a raw API key to its trusted source. Unknown keys
// return ErrSourceNotFound without touching anything else.
func (s *Service) Authenticate(ctx context.Context, apiKey string) (*models.TrustedSource, error) {
	hash, err := hashing.HashString(apiKey)
	if err != nil {
		return nil, ErrSourceNotFound
	}
	return s.store.Lookup(ctx, hash)
}

// Process authenticates the upload, checks the payload against known
// worlds and marketable items, and applies it through the behavior
// chain. A payload fails at the first section that cannot be stored.
func (s *Service) Process(ctx context.Context, apiKey string, payload *models.Payload) error {
	source, err := s.Authenticate(ctx, apiKey)
	if err != nil {
		return err
	}

	if (payload.Listings != nil || payload.Sales != nil) && (payload.WorldID == nil || payload.ItemID == nil) {
		return fmt.Errorf("%w: listings and sales require worldID and itemID", ErrValidation)
	}
	if payload.TaxRates != nil && payload.WorldID == nil {
		return fmt.Errorf("%w: tax rates require worldID", ErrValidation)
	}
	if payload.WorldID != nil {
		if _, known := s.gameData.AvailableWorlds()[*payload.WorldID]; !known {
			return fmt.Errorf("%w: unknown world %d", ErrValidation, *payload.WorldID)
		}
	}
	if payload.ItemID != nil && !s.gameData.IsMarketable(*payload.ItemID) {
		return fmt.Errorf("%w: item %d is not marketable", ErrValidation, *payload.ItemID)
	}

	// The raw uploader ID never reaches storage; listing and sale rows
	// carry its digest for attribution.
	uploaderID := ""
	if payload.UploaderID != "" {
		uploaderID, err = hashing.HashString(payload.UploaderID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	return s.chain.Run(ctx, &Upload{Source: source, Payload: payload, UploaderID: uploaderID})
}
