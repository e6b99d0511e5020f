package models

import "market-tracker/feature/market/stats"

// ListingView is a single listing as served to clients. World attribution
// is present only on datacenter-scoped queries.
type ListingView struct {
	ListingID      string    `json:"listingID"`
	PricePerUnit   uint32    `json:"pricePerUnit"`
	Quantity       uint32    `json:"quantity"`
	Total          uint64    `json:"total"`
	Hq             bool      `json:"hq"`
	OnMannequin    bool      `json:"onMannequin"`
	RetainerCity   int       `json:"retainerCity"`
	RetainerID     string    `json:"retainerID"`
	RetainerName   string    `json:"retainerName"`
	CreatorID      string    `json:"creatorID"`
	CreatorName    string    `json:"creatorName"`
	SellerID       string    `json:"sellerID"`
	LastReviewTime int64     `json:"lastReviewTime"`
	Materia        []Materia `json:"materia"`
	WorldID        *uint32   `json:"worldID,omitempty"`
	WorldName      string    `json:"worldName,omitempty"`
}

// SaleView is a single completed sale as served to clients.
type SaleView struct {
	Hq           bool    `json:"hq"`
	PricePerUnit uint32  `json:"pricePerUnit"`
	Quantity     uint32  `json:"quantity"`
	Timestamp    int64   `json:"timestamp"`
	BuyerName    string  `json:"buyerName,omitempty"`
	WorldID      *uint32 `json:"worldID,omitempty"`
	WorldName    string  `json:"worldName,omitempty"`
}

// PriceStats carries the overall/NQ/HQ price aggregates shared by both
// view kinds.
type PriceStats struct {
	AveragePrice   float64 `json:"averagePrice"`
	AveragePriceNq float64 `json:"averagePriceNQ"`
	AveragePriceHq float64 `json:"averagePriceHQ"`
	MinPrice       uint32  `json:"minPrice"`
	MinPriceNq     uint32  `json:"minPriceNQ"`
	MinPriceHq     uint32  `json:"minPriceHQ"`
	MaxPrice       uint32  `json:"maxPrice"`
	MaxPriceNq     uint32  `json:"maxPriceNQ"`
	MaxPriceHq     uint32  `json:"maxPriceHQ"`
}

// HistoryView is the aggregated sale history for one item over one world
// or datacenter. It is computed fresh per query and never persisted.
type HistoryView struct {
	ItemID         uint32     `json:"itemID"`
	WorldID        *uint32    `json:"worldID,omitempty"`
	WorldName      string     `json:"worldName,omitempty"`
	DcName         string     `json:"dcName,omitempty"`
	LastUploadTime int64      `json:"lastUploadTime"`
	Entries        []SaleView `json:"entries"`

	PriceStats

	StackSizeHistogram   stats.Histogram `json:"stackSizeHistogram"`
	StackSizeHistogramNq stats.Histogram `json:"stackSizeHistogramNQ"`
	StackSizeHistogramHq stats.Histogram `json:"stackSizeHistogramHQ"`

	SaleVelocity   float64 `json:"regularSaleVelocity"`
	SaleVelocityNq float64 `json:"nqSaleVelocity"`
	SaleVelocityHq float64 `json:"hqSaleVelocity"`

	// WorldUploadTimes maps world ID to last upload time (unix ms) on
	// DC-scoped queries.
	WorldUploadTimes map[uint32]int64 `json:"worldUploadTimes,omitempty"`
}

// CurrentView is the aggregated currently-shown market data for one item
// over one world or datacenter: the live listings plus recent sales.
type CurrentView struct {
	ItemID         uint32        `json:"itemID"`
	WorldID        *uint32       `json:"worldID,omitempty"`
	WorldName      string        `json:"worldName,omitempty"`
	DcName         string        `json:"dcName,omitempty"`
	LastUploadTime int64         `json:"lastUploadTime"`
	Listings       []ListingView `json:"listings"`
	RecentHistory  []SaleView    `json:"recentHistory"`

	// Listing-price aggregates.
	CurrentAveragePrice   float64 `json:"currentAveragePrice"`
	CurrentAveragePriceNq float64 `json:"currentAveragePriceNQ"`
	CurrentAveragePriceHq float64 `json:"currentAveragePriceHQ"`

	// Sale-price aggregates.
	PriceStats

	StackSizeHistogram   stats.Histogram `json:"stackSizeHistogram"`
	StackSizeHistogramNq stats.Histogram `json:"stackSizeHistogramNQ"`
	StackSizeHistogramHq stats.Histogram `json:"stackSizeHistogramHQ"`

	SaleVelocity   float64 `json:"regularSaleVelocity"`
	SaleVelocityNq float64 `json:"nqSaleVelocity"`
	SaleVelocityHq float64 `json:"hqSaleVelocity"`

	WorldUploadTimes map[uint32]int64 `json:"worldUploadTimes,omitempty"`
}

// HistoryMultiView wraps the per-item history views of a multi-item query.
// Items with no records anywhere are reported in UnresolvedItems, never as
// an error.
type HistoryMultiView struct {
	ItemIDs         []uint32       `json:"itemIDs"`
	Items           []*HistoryView `json:"items"`
	WorldID         *uint32        `json:"worldID,omitempty"`
	WorldName       string         `json:"worldName,omitempty"`
	DcName          string         `json:"dcName,omitempty"`
	UnresolvedItems []uint32       `json:"unresolvedItems"`
}

// CurrentMultiView wraps the per-item current-data views of a multi-item
// query.
type CurrentMultiView struct {
	ItemIDs         []uint32       `json:"itemIDs"`
	Items           []*CurrentView `json:"items"`
	WorldID         *uint32        `json:"worldID,omitempty"`
	WorldName       string         `json:"worldName,omitempty"`
	DcName          string         `json:"dcName,omitempty"`
	UnresolvedItems []uint32       `json:"unresolvedItems"`
}
