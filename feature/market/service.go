package market

import (
	"context"
	"sort"

	"market-tracker/core/gamedata"
	"market-tracker/feature/market/models"
	"market-tracker/feature/market/stats"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultEntries is the sale list cap when the caller gives none.
	DefaultEntries = 1800
	// MaxEntries is the largest accepted sale list cap; larger values clamp.
	MaxEntries = 999999
	// MaxItemIDs caps multi-item queries; extra ids are ignored.
	MaxItemIDs = 100
)

// ClampEntries normalizes a caller-supplied entries cap into [0, MaxEntries].
func ClampEntries(entries int) int {
	if entries < 0 {
		return 0
	}
	if entries > MaxEntries {
		return MaxEntries
	}
	return entries
}

// Service is the query aggregation engine. It merges per-world record sets
// into statistical views, fanning multi-item requests out in parallel.
type Service struct {
	store    *Store
	gameData gamedata.Provider
	logger   *zap.Logger
}

// NewService creates a market aggregation service.
func NewService(store *Store, gameData gamedata.Provider, logger *zap.Logger) *Service {
	return &Service{store: store, gameData: gameData, logger: logger}
}

// HistoryView aggregates the sale history of one item over the target's
// worlds. The second return value reports whether any record contributed;
// an unresolved item still yields a well-formed empty view.
func (s *Service) HistoryView(ctx context.Context, target gamedata.WorldDc, worldIDs []uint32, itemID uint32, entries int) (*models.HistoryView, bool, error) {
	var (
		sales    []models.Sale
		statuses []models.MarketStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.store.RetrieveSales(gctx, itemID, worldIDs)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = s.store.RetrieveStatuses(gctx, itemID, worldIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	resolved := len(sales) > 0
	entriesViews := s.saleViews(sales, target, entries)

	view := &models.HistoryView{
		ItemID:  itemID,
		DcName:  target.DcName,
		Entries: entriesViews,
	}
	if target.IsWorld {
		view.WorldID = &target.WorldID
		view.WorldName = target.WorldName
	}
	view.LastUploadTime, view.WorldUploadTimes = freshness(statuses, target)

	nq, hq := partitionSales(entriesViews)
	view.PriceStats = salePriceStats(entriesViews, nq, hq)
	view.StackSizeHistogram = stats.NewHistogram(saleQuantities(entriesViews))
	view.StackSizeHistogramNq = stats.NewHistogram(saleQuantities(nq))
	view.StackSizeHistogramHq = stats.NewHistogram(saleQuantities(hq))
	view.SaleVelocity = stats.SaleVelocity(saleTimestamps(entriesViews))
	view.SaleVelocityNq = stats.SaleVelocity(saleTimestamps(nq))
	view.SaleVelocityHq = stats.SaleVelocity(saleTimestamps(hq))

	return view, resolved, nil
}

// CurrentView aggregates the currently-shown listings and recent sales of
// one item over the target's worlds.
func (s *Service) CurrentView(ctx context.Context, target gamedata.WorldDc, worldIDs []uint32, itemID uint32, entries int) (*models.CurrentView, bool, error) {
	var (
		listings []models.Listing
		sales    []models.Sale
		statuses []models.MarketStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = s.store.RetrieveListings(gctx, itemID, worldIDs)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.store.RetrieveSales(gctx, itemID, worldIDs)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = s.store.RetrieveStatuses(gctx, itemID, worldIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	resolved := len(listings) > 0 || len(sales) > 0
	listingViews := s.listingViews(listings, target)
	recent := s.saleViews(sales, target, entries)

	view := &models.CurrentView{
		ItemID:        itemID,
		DcName:        target.DcName,
		Listings:      listingViews,
		RecentHistory: recent,
	}
	if target.IsWorld {
		view.WorldID = &target.WorldID
		view.WorldName = target.WorldName
	}
	view.LastUploadTime, view.WorldUploadTimes = freshness(statuses, target)

	// Listing-price aggregates.
	nqListings, hqListings := partitionListings(listingViews)
	view.CurrentAveragePrice = stats.TrimmedMean(listingPrices(listingViews))
	view.CurrentAveragePriceNq = stats.TrimmedMean(listingPrices(nqListings))
	view.CurrentAveragePriceHq = stats.TrimmedMean(listingPrices(hqListings))
	view.StackSizeHistogram = stats.NewHistogram(listingQuantities(listingViews))
	view.StackSizeHistogramNq = stats.NewHistogram(listingQuantities(nqListings))
	view.StackSizeHistogramHq = stats.NewHistogram(listingQuantities(hqListings))

	// Sale-price aggregates, with min/max taken from the live listings.
	nqSales, hqSales := partitionSales(recent)
	priceStats := salePriceStats(recent, nqSales, hqSales)
	priceStats.MinPrice, priceStats.MaxPrice = listingPriceBounds(listingViews)
	priceStats.MinPriceNq, priceStats.MaxPriceNq = listingPriceBounds(nqListings)
	priceStats.MinPriceHq, priceStats.MaxPriceHq = listingPriceBounds(hqListings)
	view.PriceStats = priceStats

	view.SaleVelocity = stats.SaleVelocity(saleTimestamps(recent))
	view.SaleVelocityNq = stats.SaleVelocity(saleTimestamps(nqSales))
	view.SaleVelocityHq = stats.SaleVelocity(saleTimestamps(hqSales))

	return view, resolved, nil
}

// HistoryMulti resolves each item independently and in parallel, preserving
// the caller's item order. Items with no records anywhere land in
// UnresolvedItems.
func (s *Service) HistoryMulti(ctx context.Context, target gamedata.WorldDc, worldIDs []uint32, itemIDs []uint32, entries int) (*models.HistoryMultiView, error) {
	views := make([]*models.HistoryView, len(itemIDs))
	resolved := make([]bool, len(itemIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, itemID := range itemIDs {
		if !s.gameData.IsMarketable(itemID) {
			continue
		}
		g.Go(func() error {
			view, ok, err := s.HistoryView(gctx, target, worldIDs, itemID, entries)
			if err != nil {
				return err
			}
			views[i], resolved[i] = view, ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	multi := &models.HistoryMultiView{
		ItemIDs:         itemIDs,
		Items:           make([]*models.HistoryView, 0, len(itemIDs)),
		DcName:          target.DcName,
		UnresolvedItems: make([]uint32, 0),
	}
	if target.IsWorld {
		multi.WorldID = &target.WorldID
		multi.WorldName = target.WorldName
	}
	for i, itemID := range itemIDs {
		if resolved[i] {
			multi.Items = append(multi.Items, views[i])
		} else {
			multi.UnresolvedItems = append(multi.UnresolvedItems, itemID)
		}
	}
	return multi, nil
}

// CurrentMulti is the multi-item counterpart of CurrentView.
func (s *Service) CurrentMulti(ctx context.Context, target gamedata.WorldDc, worldIDs []uint32, itemIDs []uint32, entries int) (*models.CurrentMultiView, error) {
	views := make([]*models.CurrentView, len(itemIDs))
	resolved := make([]bool, len(itemIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, itemID := range itemIDs {
		if !s.gameData.IsMarketable(itemID) {
			continue
		}
		g.Go(func() error {
			view, ok, err := s.CurrentView(gctx, target, worldIDs, itemID, entries)
			if err != nil {
				return err
			}
			views[i], resolved[i] = view, ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	multi := &models.CurrentMultiView{
		ItemIDs:         itemIDs,
		Items:           make([]*models.CurrentView, 0, len(itemIDs)),
		DcName:          target.DcName,
		UnresolvedItems: make([]uint32, 0),
	}
	if target.IsWorld {
		multi.WorldID = &target.WorldID
		multi.WorldName = target.WorldName
	}
	for i, itemID := range itemIDs {
		if resolved[i] {
			multi.Items = append(multi.Items, views[i])
		} else {
			multi.UnresolvedItems = append(multi.UnresolvedItems, itemID)
		}
	}
	return multi, nil
}

// saleViews merges per-world sales into one recency-ordered, capped view
// list. The sort is stable so same-timestamp records keep their relative
// order across repeated queries. World attribution is attached only for
// DC-scoped targets; a single-world request already implies the world.
func (s *Service) saleViews(sales []models.Sale, target gamedata.WorldDc, entries int) []models.SaleView {
	worlds := s.gameData.AvailableWorlds()

	views := make([]models.SaleView, 0, len(sales))
	for _, sale := range sales {
		v := models.SaleView{
			Hq:           sale.Hq,
			PricePerUnit: sale.PricePerUnit,
			Quantity:     sale.Quantity,
			Timestamp:    sale.SaleTime,
			BuyerName:    sale.BuyerName,
		}
		if target.IsDc {
			worldID := sale.WorldID
			v.WorldID = &worldID
			v.WorldName = worlds[worldID]
		}
		views = append(views, v)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp > views[j].Timestamp
	})

	if len(views) > entries {
		views = views[:entries]
	}
	return views
}

// listingViews converts listing rows for serving, cheapest first.
func (s *Service) listingViews(listings []models.Listing, target gamedata.WorldDc) []models.ListingView {
	worlds := s.gameData.AvailableWorlds()

	views := make([]models.ListingView, 0, len(listings))
	for _, l := range listings {
		v := models.ListingView{
			ListingID:      l.ListingID,
			PricePerUnit:   l.PricePerUnit,
			Quantity:       l.Quantity,
			Total:          l.Total,
			Hq:             l.Hq,
			OnMannequin:    l.OnMannequin,
			RetainerCity:   l.RetainerCityID,
			RetainerID:     l.RetainerID,
			RetainerName:   l.RetainerName,
			CreatorID:      l.CreatorID,
			CreatorName:    l.CreatorName,
			SellerID:       l.SellerID,
			LastReviewTime: l.LastReviewTime,
			Materia:        l.Materia,
		}
		if v.Materia == nil {
			v.Materia = []models.Materia{}
		}
		if target.IsDc {
			worldID := l.WorldID
			v.WorldID = &worldID
			v.WorldName = worlds[worldID]
		}
		views = append(views, v)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].PricePerUnit < views[j].PricePerUnit
	})
	return views
}

// freshness derives the view's last upload time as the maximum across all
// contributing worlds, independent of the entries truncation. DC-scoped
// targets additionally get the per-world map.
func freshness(statuses []models.MarketStatus, target gamedata.WorldDc) (int64, map[uint32]int64) {
	var last int64
	for _, st := range statuses {
		if st.LastUploadTime > last {
			last = st.LastUploadTime
		}
	}
	if !target.IsDc {
		return last, nil
	}
	perWorld := make(map[uint32]int64, len(statuses))
	for _, st := range statuses {
		perWorld[st.WorldID] = st.LastUploadTime
	}
	return last, perWorld
}

func partitionSales(views []models.SaleView) (nq, hq []models.SaleView) {
	for _, v := range views {
		if v.Hq {
			hq = append(hq, v)
		} else {
			nq = append(nq, v)
		}
	}
	return nq, hq
}

func partitionListings(views []models.ListingView) (nq, hq []models.ListingView) {
	for _, v := range views {
		if v.Hq {
			hq = append(hq, v)
		} else {
			nq = append(nq, v)
		}
	}
	return nq, hq
}

func salePrices(views []models.SaleView) []float64 {
	prices := make([]float64, len(views))
	for i, v := range views {
		prices[i] = float64(v.PricePerUnit)
	}
	return prices
}

func saleQuantities(views []models.SaleView) []int {
	qs := make([]int, len(views))
	for i, v := range views {
		qs[i] = int(v.Quantity)
	}
	return qs
}

func saleTimestamps(views []models.SaleView) []int64 {
	ts := make([]int64, len(views))
	for i, v := range views {
		ts[i] = v.Timestamp
	}
	return ts
}

func listingPrices(views []models.ListingView) []float64 {
	prices := make([]float64, len(views))
	for i, v := range views {
		prices[i] = float64(v.PricePerUnit)
	}
	return prices
}

func listingQuantities(views []models.ListingView) []int {
	qs := make([]int, len(views))
	for i, v := range views {
		qs[i] = int(v.Quantity)
	}
	return qs
}

func listingPriceBounds(views []models.ListingView) (minPrice, maxPrice uint32) {
	for _, v := range views {
		if minPrice == 0 || v.PricePerUnit < minPrice {
			minPrice = v.PricePerUnit
		}
		if v.PricePerUnit > maxPrice {
			maxPrice = v.PricePerUnit
		}
	}
	return minPrice, maxPrice
}

// salePriceStats computes trimmed means and price bounds over the capped
// sale list and its quality partitions.
func salePriceStats(all, nq, hq []models.SaleView) models.PriceStats {
	ps := models.PriceStats{
		AveragePrice:   stats.TrimmedMean(salePrices(all)),
		AveragePriceNq: stats.TrimmedMean(salePrices(nq)),
		AveragePriceHq: stats.TrimmedMean(salePrices(hq)),
	}
	ps.MinPrice, ps.MaxPrice = salePriceBounds(all)
	ps.MinPriceNq, ps.MaxPriceNq = salePriceBounds(nq)
	ps.MinPriceHq, ps.MaxPriceHq = salePriceBounds(hq)
	return ps
}

func salePriceBounds(views []models.SaleView) (minPrice, maxPrice uint32) {
	for _, v := range views {
		if minPrice == 0 || v.PricePerUnit < minPrice {
			minPrice = v.PricePerUnit
		}
		if v.PricePerUnit > maxPrice {
			maxPrice = v.PricePerUnit
		}
	}
	return minPrice, maxPrice
}
