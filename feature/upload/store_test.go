package upload_test

import (
	"context"
	"testing"

	"market-tracker/core/database"
	"market-tracker/core/hashing"
	"market-tracker/feature/upload"
	"market-tracker/feature/upload/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newTestUploadStore(t *testing.T) *upload.Store {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	assert.NoError(t, err)

	store := upload.NewStore(db)
	assert.NoError(t, store.Migrate())
	return store
}

func TestLookupUnknownKey(t *testing.T) {
	store := newTestUploadStore(t)

	_, err := store.Lookup(context.Background(), "no-such-digest")
	assert.ErrorIs(t, err, upload.ErrSourceNotFound)
}

func TestCreateAndIncrement(t *testing.T) {
	store := newTestUploadStore(t)
	ctx := context.Background()

	keyHash, err := hashing.HashString("blah")
	assert.NoError(t, err)

	err = store.Create(ctx, &models.TrustedSource{Name: "test-client", APIKeyHash: keyHash})
	assert.NoError(t, err)

	source, err := store.Lookup(ctx, keyHash)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), source.UploadCount)

	err = store.IncrementUploadCount(ctx, keyHash)
	assert.NoError(t, err)

	source, err = store.Lookup(ctx, keyHash)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), source.UploadCount)
}

func TestIncrementUnknownKey(t *testing.T) {
	store := newTestUploadStore(t)

	err := store.IncrementUploadCount(context.Background(), "no-such-digest")
	assert.ErrorIs(t, err, upload.ErrSourceNotFound)
}

// The increment must be a single relative UPDATE, not a read-modify-write,
// so concurrent uploads cannot lose counts.
func TestIncrementIsSingleUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	store := upload.NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `trusted_sources` SET `upload_count`=upload_count \\+ \\? WHERE api_key_hash = \\?").
		WithArgs(1, "digest").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.IncrementUploadCount(context.Background(), "digest")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
