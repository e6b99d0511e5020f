package cmd

import (
	"context"
	"testing"

	"market-tracker/core/database"
	"market-tracker/feature/upload"

	"github.com/stretchr/testify/assert"
)

func TestProvisionSourceStoresDigestOnly(t *testing.T) {
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	assert.NoError(t, err)

	store := upload.NewStore(db)
	assert.NoError(t, store.Migrate())

	keyHash, err := provisionSource(context.Background(), store, "test-client", "blah")
	assert.NoError(t, err)
	assert.Equal(t, "8b7df143d91c716ecfa5fc1730022f6b421b05cedee8fd52b1fc65a96030ad52", keyHash)

	source, err := store.Lookup(context.Background(), keyHash)
	assert.NoError(t, err)
	assert.Equal(t, "test-client", source.Name)

	// The raw key never matches a row.
	_, err = store.Lookup(context.Background(), "blah")
	assert.ErrorIs(t, err, upload.ErrSourceNotFound)

	// Re-registering the same key conflicts on the digest index.
	_, err = provisionSource(context.Background(), store, "other-client", "blah")
	assert.Error(t, err)
}
