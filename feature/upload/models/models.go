package models

// TrustedSource is a registered upload client. Clients authenticate with
// an API key; only its SHA-256 digest is stored. UploadCount tracks the
// number of accepted uploads and is incremented atomically in the
// database, never read-modify-write in Go.
type TrustedSource struct {
	ID          uint32 `gorm:"primaryKey;autoIncrement" json:"-"`
	Name        string `gorm:"size:64" json:"name"`
	APIKeyHash  string `gorm:"column:api_key_hash;uniqueIndex;size:64" json:"-"`
	UploadCount int64  `json:"uploadCount"`
}

// Payload is the upload request body. Every section is optional; a
// behavior runs only for the sections present. Identity fields arrive
// raw and are hashed before anything else sees them.
type Payload struct {
	UploaderID    string          `json:"uploaderID"`
	WorldID       *uint32         `json:"worldID"`
	ItemID        *uint32         `json:"itemID"`
	Listings      []ListingUpload `json:"listings"`
	Sales         []SaleUpload    `json:"entries"`
	TaxRates      *TaxRatesUpload `json:"marketTaxRates"`
	ContentID     string          `json:"contentID"`
	CharacterName string          `json:"characterName"`
}

// MateriaUpload is one materia meld on an uploaded listing.
type MateriaUpload struct {
	SlotID    uint32 `json:"slotID"`
	MateriaID uint32 `json:"materiaID"`
}

// ListingUpload is one market board listing as reported by a client.
type ListingUpload struct {
	ListingID        string          `json:"listingID"`
	Hq               bool            `json:"hq"`
	PricePerUnit     *int64          `json:"pricePerUnit"`
	Quantity         *int64          `json:"quantity"`
	OnMannequin      bool            `json:"onMannequin"`
	Materia          []MateriaUpload `json:"materia"`
	RetainerID       string          `json:"retainerID"`
	RetainerName     string          `json:"retainerName"`
	RetainerCity     int             `json:"retainerCity"`
	RetainerCityName string          `json:"retainerCityName"`
	CreatorID        string          `json:"creatorID"`
	CreatorName      string          `json:"creatorName"`
	SellerID         string          `json:"sellerID"`
	LastReviewTime   int64           `json:"lastReviewTime"`
}

// SaleUpload is one completed sale as reported by a client.
type SaleUpload struct {
	Hq           bool   `json:"hq"`
	PricePerUnit *int64 `json:"pricePerUnit"`
	Quantity     *int64 `json:"quantity"`
	Timestamp    *int64 `json:"timestamp"`
	BuyerID      string `json:"buyerID"`
	BuyerName    string `json:"buyerName"`
}

// TaxRatesUpload carries the per-city market tax percentages.
type TaxRatesUpload struct {
	LimsaLominsa uint8 `json:"limsaLominsa"`
	Gridania     uint8 `json:"gridania"`
	Uldah        uint8 `json:"uldah"`
	Ishgard      uint8 `json:"ishgard"`
	Kugane       uint8 `json:"kugane"`
	Crystarium   uint8 `json:"crystarium"`
}
