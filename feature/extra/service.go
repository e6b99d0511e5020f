package extra

import (
	"context"
	"sort"
	"time"

	"market-tracker/core/gamedata"
	"market-tracker/feature/extra/models"

	"go.uber.org/zap"
)

// UploadHistoryDays is the length of the daily upload count series.
const UploadHistoryDays = 30

// Service serves the auxiliary upload data: content ID lookups, upload
// statistics, and the recently-updated item list.
type Service struct {
	store    *Store
	gameData gamedata.Provider
	logger   *zap.Logger
}

// NewService creates an auxiliary data service.
func NewService(store *Store, gameData gamedata.Provider, logger *zap.Logger) *Service {
	return &Service{store: store, gameData: gameData, logger: logger}
}

// ContentID looks up the character name stored for a hashed content ID.
func (s *Service) ContentID(ctx context.Context, contentID string) (*models.ContentID, error) {
	return s.store.ContentID(ctx, contentID)
}

// UploadHistory returns the daily upload counts for the trailing
// UploadHistoryDays days, today first.
func (s *Service) UploadHistory(ctx context.Context) (*models.UploadHistoryView, error) {
	counts, err := s.store.DailyUploadCounts(ctx, time.Now(), UploadHistoryDays)
	if err != nil {
		return nil, err
	}
	return &models.UploadHistoryView{Count: counts}, nil
}

// WorldUploadCounts returns each known world's upload total and its
// proportion of the overall volume, keyed by world name.
func (s *Service) WorldUploadCounts(ctx context.Context) (map[string]models.WorldUploadCount, error) {
	worlds := s.gameData.AvailableWorlds()

	worldIDs := make([]uint32, 0, len(worlds))
	for id := range worlds {
		worldIDs = append(worldIDs, id)
	}
	// MGET key order is arbitrary otherwise; stable order keeps the
	// request reproducible.
	sort.Slice(worldIDs, func(i, j int) bool { return worldIDs[i] < worldIDs[j] })

	counts, err := s.store.WorldUploadCounts(ctx, worldIDs)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	view := make(map[string]models.WorldUploadCount, len(counts))
	for id, c := range counts {
		entry := models.WorldUploadCount{Count: c}
		if total > 0 {
			entry.Proportion = float64(c) / float64(total)
		}
		view[worlds[id]] = entry
	}
	return view, nil
}

// RecentlyUpdated returns the most recently uploaded items, newest first.
func (s *Service) RecentlyUpdated(ctx context.Context) (*models.RecentlyUpdatedView, error) {
	items, err := s.store.RecentlyUpdated(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &models.RecentlyUpdatedView{Items: items}, nil
}
