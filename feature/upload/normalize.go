package upload

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"market-tracker/core/hashing"
	extramodels "market-tracker/feature/extra/models"
	marketmodels "market-tracker/feature/market/models"
	"market-tracker/feature/upload/models"
)

// ErrValidation is returned when an upload section carries malformed
// data. It maps to a 400 and never reaches storage.
var ErrValidation = errors.New("invalid upload payload")

// cityIDs canonicalizes retainer city names for clients that report the
// city as text rather than its numeric ID.
var cityIDs = map[string]int{
	"limsa lominsa": 1,
	"gridania":      2,
	"ul'dah":        3,
	"ishgard":       4,
	"kugane":        7,
	"crystarium":    10,
}

// normalizeListings validates the uploaded listing set and converts it to
// storable rows, hashing every identity field. A single bad listing
// rejects the whole section.
func normalizeListings(uploads []models.ListingUpload) ([]marketmodels.Listing, error) {
	rows := make([]marketmodels.Listing, 0, len(uploads))
	for _, u := range uploads {
		if u.PricePerUnit == nil || *u.PricePerUnit <= 0 || *u.PricePerUnit > math.MaxUint32 {
			return nil, fmt.Errorf("%w: listing price out of range", ErrValidation)
		}
		if u.Quantity == nil || *u.Quantity <= 0 || *u.Quantity > math.MaxUint32 {
			return nil, fmt.Errorf("%w: listing quantity out of range", ErrValidation)
		}

		retainerID, err := hashing.HashString(u.RetainerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		sellerID, err := hashing.HashString(u.SellerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		creatorID := ""
		if u.CreatorID != "" {
			creatorID, err = hashing.HashString(u.CreatorID)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}

		price := uint32(*u.PricePerUnit)
		quantity := uint32(*u.Quantity)

		city := u.RetainerCity
		if city == 0 && u.RetainerCityName != "" {
			id, known := cityIDs[strings.ToLower(u.RetainerCityName)]
			if !known {
				return nil, fmt.Errorf("%w: unknown retainer city %q", ErrValidation, u.RetainerCityName)
			}
			city = id
		}

		// Empty meld slots arrive as zero-valued entries; drop them.
		materia := make([]marketmodels.Materia, 0, len(u.Materia))
		for _, m := range u.Materia {
			if m.MateriaID == 0 {
				continue
			}
			materia = append(materia, marketmodels.Materia{
				SlotID:    m.SlotID,
				MateriaID: m.MateriaID,
			})
		}

		rows = append(rows, marketmodels.Listing{
			ListingID:      u.ListingID,
			PricePerUnit:   price,
			Quantity:       quantity,
			Total:          uint64(price) * uint64(quantity),
			Hq:             u.Hq,
			OnMannequin:    u.OnMannequin,
			RetainerCityID: city,
			RetainerID:     retainerID,
			RetainerName:   u.RetainerName,
			CreatorID:      creatorID,
			CreatorName:    u.CreatorName,
			SellerID:       sellerID,
			LastReviewTime: u.LastReviewTime,
			Materia:        materia,
		})
	}
	return rows, nil
}

// identity is a hashed content ID with its category and display name, to
// index for the content lookup.
type identity struct {
	id          string
	contentType string
	name        string
}

// normalizeSales validates the uploaded sale entries and converts them to
// storable rows, collecting buyer identities where a client reported them.
func normalizeSales(uploads []models.SaleUpload) ([]marketmodels.Sale, []identity, error) {
	rows := make([]marketmodels.Sale, 0, len(uploads))
	var buyers []identity
	seen := make(map[string]struct{})
	for _, u := range uploads {
		if u.PricePerUnit == nil || *u.PricePerUnit <= 0 || *u.PricePerUnit > math.MaxUint32 {
			return nil, nil, fmt.Errorf("%w: sale price out of range", ErrValidation)
		}
		if u.Quantity == nil || *u.Quantity <= 0 || *u.Quantity > math.MaxUint32 {
			return nil, nil, fmt.Errorf("%w: sale quantity out of range", ErrValidation)
		}
		if u.Timestamp == nil || *u.Timestamp <= 0 {
			return nil, nil, fmt.Errorf("%w: sale timestamp must be positive", ErrValidation)
		}

		if u.BuyerID != "" && u.BuyerName != "" {
			hashed, err := hashing.HashString(u.BuyerID)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			if _, dup := seen[hashed]; !dup {
				seen[hashed] = struct{}{}
				buyers = append(buyers, identity{
					id:          hashed,
					contentType: extramodels.ContentTypePlayer,
					name:        u.BuyerName,
				})
			}
		}

		rows = append(rows, marketmodels.Sale{
			SaleTime:     *u.Timestamp,
			PricePerUnit: uint32(*u.PricePerUnit),
			Quantity:     uint32(*u.Quantity),
			Hq:           u.Hq,
			BuyerName:    u.BuyerName,
		})
	}
	return rows, buyers, nil
}

// normalizeTaxRates converts an uploaded tax rate section to the stored
// row for the given world.
func normalizeTaxRates(worldID uint32, u *models.TaxRatesUpload) marketmodels.TaxRates {
	return marketmodels.TaxRates{
		WorldID:      worldID,
		LimsaLominsa: u.LimsaLominsa,
		Gridania:     u.Gridania,
		Uldah:        u.Uldah,
		Ishgard:      u.Ishgard,
		Kugane:       u.Kugane,
		Crystarium:   u.Crystarium,
	}
}
