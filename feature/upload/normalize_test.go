package upload

import (
	"testing"

	"market-tracker/core/hashing"
	extramodels "market-tracker/feature/extra/models"
	"market-tracker/feature/upload/models"

	"github.com/stretchr/testify/assert"
)

func price(v int64) *int64 { return &v }

func TestNormalizeListingsHashesIdentities(t *testing.T) {
	rows, err := normalizeListings([]models.ListingUpload{
		{
			ListingID:    "a",
			PricePerUnit: price(100),
			Quantity:     price(3),
			RetainerID:   "raw-retainer",
			SellerID:     "raw-seller",
		},
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	hashedRetainer, _ := hashing.HashString("raw-retainer")
	hashedSeller, _ := hashing.HashString("raw-seller")
	assert.Equal(t, hashedRetainer, rows[0].RetainerID)
	assert.Equal(t, hashedSeller, rows[0].SellerID)
	assert.Equal(t, uint64(300), rows[0].Total)
}

func TestNormalizeListingsStripsEmptyMateriaSlots(t *testing.T) {
	rows, err := normalizeListings([]models.ListingUpload{
		{
			ListingID:    "a",
			PricePerUnit: price(100),
			Quantity:     price(1),
			Materia: []models.MateriaUpload{
				{SlotID: 1, MateriaID: 20},
				{SlotID: 2, MateriaID: 0},
				{SlotID: 3, MateriaID: 33},
			},
		},
	})
	assert.NoError(t, err)
	assert.Len(t, rows[0].Materia, 2)
	assert.Equal(t, uint32(20), rows[0].Materia[0].MateriaID)
	assert.Equal(t, uint32(33), rows[0].Materia[1].MateriaID)
}

func TestNormalizeListingsCanonicalizesCityNames(t *testing.T) {
	rows, err := normalizeListings([]models.ListingUpload{
		{ListingID: "a", PricePerUnit: price(100), Quantity: price(1), RetainerCityName: "Ul'dah"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, rows[0].RetainerCityID)

	_, err = normalizeListings([]models.ListingUpload{
		{ListingID: "a", PricePerUnit: price(100), Quantity: price(1), RetainerCityName: "Atlantis"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeListingsRejectsBadNumerics(t *testing.T) {
	_, err := normalizeListings([]models.ListingUpload{
		{ListingID: "a", Quantity: price(1)},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = normalizeListings([]models.ListingUpload{
		{ListingID: "a", PricePerUnit: price(-5), Quantity: price(1)},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeSalesCollectsBuyerIdentities(t *testing.T) {
	ts := int64(1700000000)
	rows, buyers, err := normalizeSales([]models.SaleUpload{
		{PricePerUnit: price(100), Quantity: price(1), Timestamp: &ts, BuyerID: "raw-buyer", BuyerName: "Buyer Name"},
		{PricePerUnit: price(200), Quantity: price(2), Timestamp: &ts, BuyerID: "raw-buyer", BuyerName: "Buyer Name"},
		{PricePerUnit: price(300), Quantity: price(1), Timestamp: &ts},
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	// Duplicate buyers collapse; nameless sales contribute none.
	assert.Len(t, buyers, 1)
	hashedBuyer, _ := hashing.HashString("raw-buyer")
	assert.Equal(t, hashedBuyer, buyers[0].id)
	assert.Equal(t, extramodels.ContentTypePlayer, buyers[0].contentType)
	assert.Equal(t, "Buyer Name", buyers[0].name)
}

func TestNormalizeSalesRejectsMissingTimestamp(t *testing.T) {
	_, _, err := normalizeSales([]models.SaleUpload{
		{PricePerUnit: price(100), Quantity: price(1)},
	})
	assert.ErrorIs(t, err, ErrValidation)
}
