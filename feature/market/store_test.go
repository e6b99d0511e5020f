package market_test

import (
	"context"
	"testing"

	"market-tracker/core/database"
	"market-tracker/feature/market"
	"market-tracker/feature/market/models"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *market.Store {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	assert.NoError(t, err)

	store := market.NewStore(db)
	assert.NoError(t, store.Migrate())
	return store
}

func TestMergeSalesDeduplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sale := models.Sale{
		SaleTime:     1700000000,
		PricePerUnit: 500,
		Quantity:     3,
		Hq:           true,
		BuyerName:    "Some Buyer",
	}

	// Same sale reported by two uploads.
	err := store.MergeSales(ctx, 74, 5333, []models.Sale{sale})
	assert.NoError(t, err)
	err = store.MergeSales(ctx, 74, 5333, []models.Sale{sale})
	assert.NoError(t, err)

	sales, err := store.RetrieveSales(ctx, 5333, []uint32{74})
	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, uint32(74), sales[0].WorldID)
	assert.Equal(t, uint32(5333), sales[0].ItemID)
}

func TestMergeSalesKeepsDistinctEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.MergeSales(ctx, 74, 5333, []models.Sale{
		{SaleTime: 1700000000, PricePerUnit: 500, Quantity: 1},
		{SaleTime: 1700000000, PricePerUnit: 500, Quantity: 2},
		{SaleTime: 1700000100, PricePerUnit: 500, Quantity: 1},
	})
	assert.NoError(t, err)

	sales, err := store.RetrieveSales(ctx, 5333, []uint32{74})
	assert.NoError(t, err)
	assert.Len(t, sales, 3)
}

func TestReplaceListingsSwapsFullSet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.ReplaceListings(ctx, 74, 5333, []models.Listing{
		{ListingID: "old-a", PricePerUnit: 100, Quantity: 1},
		{ListingID: "old-b", PricePerUnit: 200, Quantity: 1},
	})
	assert.NoError(t, err)

	err = store.ReplaceListings(ctx, 74, 5333, []models.Listing{
		{ListingID: "new-a", PricePerUnit: 150, Quantity: 2},
	})
	assert.NoError(t, err)

	listings, err := store.RetrieveListings(ctx, 5333, []uint32{74})
	assert.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, "new-a", listings[0].ListingID)
}

func TestReplaceListingsScopedToWorldAndItem(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.ReplaceListings(ctx, 74, 5333, []models.Listing{
		{ListingID: "crystal-listing", PricePerUnit: 100, Quantity: 1},
	})
	assert.NoError(t, err)
	err = store.ReplaceListings(ctx, 62, 5333, []models.Listing{
		{ListingID: "diabolos-listing", PricePerUnit: 300, Quantity: 1},
	})
	assert.NoError(t, err)

	// Replacing world 74 leaves world 62 untouched.
	err = store.ReplaceListings(ctx, 74, 5333, nil)
	assert.NoError(t, err)

	listings, err := store.RetrieveListings(ctx, 5333, []uint32{74, 62})
	assert.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, "diabolos-listing", listings[0].ListingID)
}

func TestUploadsTouchMarketStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.MergeSales(ctx, 74, 5333, []models.Sale{
		{SaleTime: 1700000000, PricePerUnit: 500, Quantity: 1},
	})
	assert.NoError(t, err)

	statuses, err := store.RetrieveStatuses(ctx, 5333, []uint32{74})
	assert.NoError(t, err)
	assert.Len(t, statuses, 1)
	assert.Greater(t, statuses[0].LastUploadTime, int64(0))
}

func TestTaxRatesUpsertAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.TaxRates(ctx, 74)
	assert.ErrorIs(t, err, market.ErrTaxRatesNotFound)

	err = store.UpsertTaxRates(ctx, models.TaxRates{
		WorldID:      74,
		LimsaLominsa: 5,
		Gridania:     5,
		Uldah:        5,
		Ishgard:      0,
		Kugane:       3,
		Crystarium:   3,
	})
	assert.NoError(t, err)

	rates, err := store.TaxRates(ctx, 74)
	assert.NoError(t, err)
	assert.Equal(t, uint8(5), rates.LimsaLominsa)
	assert.Equal(t, uint8(3), rates.Crystarium)

	// A later upload overwrites the stored rates.
	err = store.UpsertTaxRates(ctx, models.TaxRates{WorldID: 74, LimsaLominsa: 7})
	assert.NoError(t, err)

	rates, err = store.TaxRates(ctx, 74)
	assert.NoError(t, err)
	assert.Equal(t, uint8(7), rates.LimsaLominsa)
}
