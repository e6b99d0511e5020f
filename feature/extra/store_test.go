package extra_test

import (
	"context"
	"testing"
	"time"

	"market-tracker/core/database"
	"market-tracker/core/redis/mocks"
	"market-tracker/feature/extra"
	"market-tracker/feature/extra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestStore(t *testing.T) (*extra.Store, *mocks.Client) {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	assert.NoError(t, err)

	rdb := new(mocks.Client)
	store := extra.NewStore(db, rdb)
	assert.NoError(t, store.Migrate())
	return store, rdb
}

func TestContentIDUpsertLastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.ContentID(ctx, "abc123")
	assert.ErrorIs(t, err, extra.ErrContentIDNotFound)

	err = store.UpsertContentID(ctx, "abc123", models.ContentTypePlayer, "First Name")
	assert.NoError(t, err)
	err = store.UpsertContentID(ctx, "abc123", models.ContentTypePlayer, "Second Name")
	assert.NoError(t, err)

	row, err := store.ContentID(ctx, "abc123")
	assert.NoError(t, err)
	assert.Equal(t, "Second Name", row.CharacterName)
	assert.Equal(t, models.ContentTypePlayer, row.ContentType)
}

func TestContentIDKeepsCategory(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.UpsertContentID(ctx, "ret456", models.ContentTypeRetainer, "Retainer Name")
	assert.NoError(t, err)

	row, err := store.ContentID(ctx, "ret456")
	assert.NoError(t, err)
	assert.Equal(t, models.ContentTypeRetainer, row.ContentType)
	assert.Equal(t, "Retainer Name", row.CharacterName)
}

func TestIncrementDailyUploads(t *testing.T) {
	store, rdb := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	rdb.On("Incr", mock.Anything, "uploads:day:2024-03-15").Return(int64(1), nil)

	err := store.IncrementDailyUploads(ctx, now)
	assert.NoError(t, err)
	rdb.AssertExpectations(t)
}

func TestIncrementWorldUploads(t *testing.T) {
	store, rdb := newTestStore(t)
	ctx := context.Background()

	rdb.On("Incr", mock.Anything, "uploads:world:74").Return(int64(1), nil)

	err := store.IncrementWorldUploads(ctx, 74)
	assert.NoError(t, err)
	rdb.AssertExpectations(t)
}

func TestTrackRecentlyUpdated(t *testing.T) {
	store, rdb := newTestStore(t)
	ctx := context.Background()

	rdb.On("LRem", mock.Anything, "items:recently-updated", int64(0), "5333").Return(nil)
	rdb.On("LPush", mock.Anything, "items:recently-updated", "5333").Return(nil)
	rdb.On("LTrim", mock.Anything, "items:recently-updated", int64(0), int64(199)).Return(nil)

	err := store.TrackRecentlyUpdated(ctx, 5333)
	assert.NoError(t, err)
	rdb.AssertExpectations(t)
}

func TestDailyUploadCounts(t *testing.T) {
	store, rdb := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)

	// The middle day has no counter and reports zero.
	rdb.On("MGet", mock.Anything,
		"uploads:day:2024-03-15",
		"uploads:day:2024-03-14",
		"uploads:day:2024-03-13",
	).Return([]interface{}{"42", nil, "7"}, nil)

	counts, err := store.DailyUploadCounts(ctx, now, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int64{42, 0, 7}, counts)
}

func TestRecentlyUpdatedSkipsMalformedEntries(t *testing.T) {
	store, rdb := newTestStore(t)
	ctx := context.Background()

	rdb.On("LRange", mock.Anything, "items:recently-updated", int64(0), int64(199)).
		Return([]string{"5333", "not-an-id", "5057"}, nil)

	items, err := store.RecentlyUpdated(ctx, 0)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{5333, 5057}, items)
}
