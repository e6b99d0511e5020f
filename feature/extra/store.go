package extra

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"market-tracker/core/redis"
	"market-tracker/feature/extra/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Redis keyspace. Day keys use the UTC date so counters roll over at the
// same instant regardless of server timezone.
const (
	dayKeyPrefix     = "uploads:day:"
	worldKeyPrefix   = "uploads:world:"
	recentlyUpdated  = "items:recently-updated"
	recentlyCapacity = 200
)

// ErrContentIDNotFound is returned when no character was uploaded for a
// content ID.
var ErrContentIDNotFound = errors.New("content id not found")

// Store persists the auxiliary upload state: content-ID/character-name
// pairs in the relational database, upload counters and the
// recently-updated item list in Redis.
type Store struct {
	db  *gorm.DB
	rdb redis.Client
}

// NewStore creates an auxiliary data store.
func NewStore(db *gorm.DB, rdb redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

// Migrate creates or updates the content ID table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&models.ContentID{})
}

// UpsertContentID records the display name and category for a hashed
// content ID, overwriting any previous entry.
func (s *Store) UpsertContentID(ctx context.Context, contentID, contentType, characterName string) error {
	row := models.ContentID{
		ContentID:     contentID,
		ContentType:   contentType,
		CharacterName: characterName,
		UpdatedAt:     time.Now().Unix(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_type", "character_name", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert content id: %w", err)
	}
	return nil
}

// ContentID fetches the stored character name for a hashed content ID.
func (s *Store) ContentID(ctx context.Context, contentID string) (*models.ContentID, error) {
	var row models.ContentID
	err := s.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentIDNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve content id: %w", err)
	}
	return &row, nil
}

// IncrementDailyUploads bumps the upload counter for now's UTC day. Every
// accepted upload counts, whatever sections it carries.
func (s *Store) IncrementDailyUploads(ctx context.Context, now time.Time) error {
	if _, err := s.rdb.Incr(ctx, dayKey(now)); err != nil {
		return fmt.Errorf("failed to increment daily counter: %w", err)
	}
	return nil
}

// IncrementWorldUploads bumps the total upload counter for a world.
func (s *Store) IncrementWorldUploads(ctx context.Context, worldID uint32) error {
	if _, err := s.rdb.Incr(ctx, worldKey(worldID)); err != nil {
		return fmt.Errorf("failed to increment world counter: %w", err)
	}
	return nil
}

// TrackRecentlyUpdated moves the item to the front of the
// recently-updated list.
func (s *Store) TrackRecentlyUpdated(ctx context.Context, itemID uint32) error {
	// Move-to-front keeps the list duplicate-free: remove any prior
	// occurrence, push, then cap the length.
	item := strconv.FormatUint(uint64(itemID), 10)
	if err := s.rdb.LRem(ctx, recentlyUpdated, 0, item); err != nil {
		return fmt.Errorf("failed to dedupe recently-updated list: %w", err)
	}
	if err := s.rdb.LPush(ctx, recentlyUpdated, item); err != nil {
		return fmt.Errorf("failed to push recently-updated item: %w", err)
	}
	if err := s.rdb.LTrim(ctx, recentlyUpdated, 0, recentlyCapacity-1); err != nil {
		return fmt.Errorf("failed to trim recently-updated list: %w", err)
	}
	return nil
}

// DailyUploadCounts returns the upload counts for the last days days,
// most recent first. Days with no counter report zero.
func (s *Store) DailyUploadCounts(ctx context.Context, now time.Time, days int) ([]int64, error) {
	keys := make([]string, days)
	for i := 0; i < days; i++ {
		keys[i] = dayKey(now.AddDate(0, 0, -i))
	}

	vals, err := s.rdb.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily counters: %w", err)
	}

	counts := make([]int64, days)
	for i, v := range vals {
		counts[i] = parseCounter(v)
	}
	return counts, nil
}

// WorldUploadCounts returns the total upload count per world.
func (s *Store) WorldUploadCounts(ctx context.Context, worldIDs []uint32) (map[uint32]int64, error) {
	keys := make([]string, len(worldIDs))
	for i, id := range worldIDs {
		keys[i] = worldKey(id)
	}

	vals, err := s.rdb.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch world counters: %w", err)
	}

	counts := make(map[uint32]int64, len(worldIDs))
	for i, id := range worldIDs {
		counts[id] = parseCounter(vals[i])
	}
	return counts, nil
}

// RecentlyUpdated returns up to limit most recently uploaded item IDs,
// newest first.
func (s *Store) RecentlyUpdated(ctx context.Context, limit int) ([]uint32, error) {
	if limit <= 0 || limit > recentlyCapacity {
		limit = recentlyCapacity
	}
	raw, err := s.rdb.LRange(ctx, recentlyUpdated, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recently-updated list: %w", err)
	}

	items := make([]uint32, 0, len(raw))
	for _, entry := range raw {
		id, err := strconv.ParseUint(entry, 10, 32)
		if err != nil {
			continue
		}
		items = append(items, uint32(id))
	}
	return items, nil
}

func dayKey(t time.Time) string {
	return dayKeyPrefix + t.UTC().Format("2006-01-02")
}

func worldKey(worldID uint32) string {
	return worldKeyPrefix + strconv.FormatUint(uint64(worldID), 10)
}

// parseCounter interprets an MGET entry; missing keys come back nil.
func parseCounter(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
