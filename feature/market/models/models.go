package models

// Materia is a single materia meld attached to a listed item.
type Materia struct {
	SlotID    uint32 `json:"slotID"`
	MateriaID uint32 `json:"materiaID"`
}

// Listing is one currently-shown market board listing for a (world, item)
// pair. An upload replaces the full listing set for its (world, item), so
// rows here always reflect the most recent accepted snapshot. Creator,
// retainer, seller, and uploader IDs are stored as SHA-256 digests only.
type Listing struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	WorldID        uint32    `gorm:"index:idx_listings_world_item" json:"-"`
	ItemID         uint32    `gorm:"index:idx_listings_world_item" json:"-"`
	ListingID      string    `gorm:"size:64" json:"listingID"`
	PricePerUnit   uint32    `json:"pricePerUnit"`
	Quantity       uint32    `json:"quantity"`
	Total          uint64    `json:"total"`
	Hq             bool      `json:"hq"`
	OnMannequin    bool      `json:"onMannequin"`
	RetainerCityID int       `json:"retainerCity"`
	RetainerID     string    `gorm:"size:64" json:"retainerID"`
	RetainerName   string    `gorm:"size:64" json:"retainerName"`
	CreatorID      string    `gorm:"size:64" json:"creatorID"`
	CreatorName    string    `gorm:"size:64" json:"creatorName"`
	SellerID       string    `gorm:"size:64" json:"sellerID"`
	UploaderID     string    `gorm:"size:64" json:"-"`
	LastReviewTime int64     `json:"lastReviewTime"`
	Materia        []Materia `gorm:"serializer:json" json:"materia"`
}

// Sale is one completed sale for a (world, item) pair. Sales merge across
// uploads: a row identical in world, item, time, price, quantity, and
// quality to an existing one is a duplicate and is dropped on insert.
type Sale struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	WorldID      uint32 `gorm:"uniqueIndex:uniq_sales_entry" json:"-"`
	ItemID       uint32 `gorm:"uniqueIndex:uniq_sales_entry" json:"-"`
	SaleTime     int64  `gorm:"uniqueIndex:uniq_sales_entry" json:"timestamp"`
	PricePerUnit uint32 `gorm:"uniqueIndex:uniq_sales_entry" json:"pricePerUnit"`
	Quantity     uint32 `gorm:"uniqueIndex:uniq_sales_entry" json:"quantity"`
	Hq           bool   `gorm:"uniqueIndex:uniq_sales_entry" json:"hq"`
	BuyerName    string `gorm:"size:64" json:"buyerName"`
	UploaderID   string `gorm:"size:64" json:"-"`
}

// MarketStatus tracks the last upload time per (world, item), in
// milliseconds since the UNIX epoch. It feeds the freshness indicator on
// aggregated views and the per-world upload time map on DC-scoped queries.
type MarketStatus struct {
	WorldID        uint32 `gorm:"primaryKey;autoIncrement:false"`
	ItemID         uint32 `gorm:"primaryKey;autoIncrement:false"`
	LastUploadTime int64
}

// TaxRates holds the per-city market tax percentages for one world,
// overwritten by each accepted tax-rate upload.
type TaxRates struct {
	WorldID      uint32 `gorm:"primaryKey;autoIncrement:false" json:"-"`
	LimsaLominsa uint8  `json:"limsaLominsa"`
	Gridania     uint8  `json:"gridania"`
	Uldah        uint8  `json:"uldah"`
	Ishgard      uint8  `json:"ishgard"`
	Kugane       uint8  `json:"kugane"`
	Crystarium   uint8  `json:"crystarium"`
	UploadedAt   int64  `json:"-"`
}
