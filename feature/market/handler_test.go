package market_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"market-tracker/core/database"
	"market-tracker/feature/market"
	"market-tracker/feature/market/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*fiber.App, *market.Store) {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	assert.NoError(t, err)

	feature := market.NewFeature(db, testGameData(), zap.NewNop())
	store := market.NewStore(db)
	assert.NoError(t, store.Migrate())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
	return app, store
}

func TestHandleCurrentSingleItem(t *testing.T) {
	app, store := newTestApp(t)

	err := store.ReplaceListings(context.Background(), 74, 5333, []models.Listing{
		{ListingID: "a", PricePerUnit: 100, Quantity: 1},
		{ListingID: "b", PricePerUnit: 250, Quantity: 2},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/Coeurl/5333", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view models.CurrentView
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &view))

	assert.Equal(t, uint32(5333), view.ItemID)
	assert.Equal(t, "Coeurl", view.WorldName)
	assert.Len(t, view.Listings, 2)
	assert.Equal(t, "a", view.Listings[0].ListingID)
}

func TestHandleHistoryDatacenter(t *testing.T) {
	app, store := newTestApp(t)

	err := store.MergeSales(context.Background(), 74, 5333, []models.Sale{
		{SaleTime: 1700000000, PricePerUnit: 100, Quantity: 1},
	})
	assert.NoError(t, err)
	err = store.MergeSales(context.Background(), 62, 5333, []models.Sale{
		{SaleTime: 1700003600, PricePerUnit: 200, Quantity: 1},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/history/Crystal/5333", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view models.HistoryView
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &view))

	assert.Equal(t, "Crystal", view.DcName)
	assert.Len(t, view.Entries, 2)
	assert.Equal(t, "Diabolos", view.Entries[0].WorldName)
	assert.Len(t, view.WorldUploadTimes, 2)
}

func TestHandleHistoryMultiItem(t *testing.T) {
	app, store := newTestApp(t)

	err := store.MergeSales(context.Background(), 74, 5333, []models.Sale{
		{SaleTime: 1700000000, PricePerUnit: 100, Quantity: 1},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/history/Coeurl/5333,5057", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var multi models.HistoryMultiView
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &multi))

	assert.Equal(t, []uint32{5333, 5057}, multi.ItemIDs)
	assert.Len(t, multi.Items, 1)
	assert.Equal(t, []uint32{5057}, multi.UnresolvedItems)
}

func TestHandleHistoryEntriesParam(t *testing.T) {
	app, store := newTestApp(t)

	err := store.MergeSales(context.Background(), 74, 5333, []models.Sale{
		{SaleTime: 1700000000, PricePerUnit: 100, Quantity: 1},
		{SaleTime: 1700001000, PricePerUnit: 200, Quantity: 1},
		{SaleTime: 1700002000, PricePerUnit: 300, Quantity: 1},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/history/Coeurl/5333?entries=2", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view models.HistoryView
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &view))
	assert.Len(t, view.Entries, 2)
	assert.Equal(t, int64(1700002000), view.Entries[0].Timestamp)
}

func TestHandleCurrentUnknownWorld(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/Atlantis/5333", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleCurrentUnmarketableItem(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/Coeurl/123", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleCurrentNumericWorldID(t *testing.T) {
	app, store := newTestApp(t)

	err := store.ReplaceListings(context.Background(), 74, 5333, []models.Listing{
		{ListingID: "a", PricePerUnit: 100, Quantity: 1},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/74/5333", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view models.CurrentView
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "Coeurl", view.WorldName)
}

func TestHandleTaxRates(t *testing.T) {
	app, store := newTestApp(t)

	// No upload yet.
	req := httptest.NewRequest("GET", "/api/tax-rates?world=Coeurl", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	err = store.UpsertTaxRates(context.Background(), models.TaxRates{
		WorldID:      74,
		LimsaLominsa: 5,
		Kugane:       3,
	})
	assert.NoError(t, err)

	req = httptest.NewRequest("GET", "/api/tax-rates?world=Coeurl", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rates models.TaxRates
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &rates))
	assert.Equal(t, uint8(5), rates.LimsaLominsa)
	assert.Equal(t, uint8(3), rates.Kugane)

	// Datacenter names are not valid tax rate targets.
	req = httptest.NewRequest("GET", "/api/tax-rates?world=Crystal", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
