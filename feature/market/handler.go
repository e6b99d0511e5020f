package market

import (
	"strconv"
	"strings"

	"market-tracker/core/gamedata"
	"market-tracker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for market data queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the market query routes. The current-data route
// is a catch-all under /api and must be registered after every other /api
// route, which the feature load order guarantees.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/api/history/:worldOrDc/:itemIds", h.HandleHistory)
	app.Get("/api/tax-rates", h.HandleTaxRates)
	app.Get("/api/:worldOrDc/:itemIds", h.HandleCurrent)
}

// HandleHistory returns aggregated sale history for one or more items.
// @Summary Get Sale History
// @Description Aggregated sale history for the given items on a world or datacenter.
// @Tags market
// @Produce json
// @Param worldOrDc path string true "World name, world ID, or datacenter name"
// @Param itemIds path string true "Comma-separated item IDs (max 100)"
// @Param entries query int false "Maximum number of sale entries to return (default 1800)"
// @Success 200 {object} models.HistoryView "History for a single item"
// @Failure 404 {object} map[string]string "Unknown world, datacenter, or item"
// @Router /api/history/{worldOrDc}/{itemIds} [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	target, worldIDs, ok := gamedata.ResolveWorldDc(h.service.gameData, c.Params("worldOrDc"))
	if !ok {
		return fiber.ErrNotFound
	}

	itemIDs := parseItemIDs(c.Params("itemIds"))
	if len(itemIDs) == 0 {
		return fiber.ErrNotFound
	}
	entries := parseEntries(c.Query("entries"))

	if len(itemIDs) == 1 {
		itemID := itemIDs[0]
		if !h.service.gameData.IsMarketable(itemID) {
			return fiber.ErrNotFound
		}
		view, _, err := h.service.HistoryView(c.Context(), target, worldIDs, itemID, entries)
		if err != nil {
			l.Error("History query failed", zap.Uint32("item_id", itemID), zap.Error(err))
			return fiber.ErrInternalServerError
		}
		return c.JSON(view)
	}

	multi, err := h.service.HistoryMulti(c.Context(), target, worldIDs, itemIDs, entries)
	if err != nil {
		l.Error("Multi-item history query failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(multi)
}

// HandleCurrent returns the currently-shown market data for one or more items.
// @Summary Get Current Market Data
// @Description Current listings and recent sales for the given items on a world or datacenter.
// @Tags market
// @Produce json
// @Param worldOrDc path string true "World name, world ID, or datacenter name"
// @Param itemIds path string true "Comma-separated item IDs (max 100)"
// @Param entries query int false "Maximum number of recent sales to return (default 1800)"
// @Success 200 {object} models.CurrentView "Current data for a single item"
// @Failure 404 {object} map[string]string "Unknown world, datacenter, or item"
// @Router /api/{worldOrDc}/{itemIds} [get]
func (h *Handler) HandleCurrent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	target, worldIDs, ok := gamedata.ResolveWorldDc(h.service.gameData, c.Params("worldOrDc"))
	if !ok {
		return fiber.ErrNotFound
	}

	itemIDs := parseItemIDs(c.Params("itemIds"))
	if len(itemIDs) == 0 {
		return fiber.ErrNotFound
	}
	entries := parseEntries(c.Query("entries"))

	if len(itemIDs) == 1 {
		itemID := itemIDs[0]
		if !h.service.gameData.IsMarketable(itemID) {
			return fiber.ErrNotFound
		}
		view, _, err := h.service.CurrentView(c.Context(), target, worldIDs, itemID, entries)
		if err != nil {
			l.Error("Current data query failed", zap.Uint32("item_id", itemID), zap.Error(err))
			return fiber.ErrInternalServerError
		}
		return c.JSON(view)
	}

	multi, err := h.service.CurrentMulti(c.Context(), target, worldIDs, itemIDs, entries)
	if err != nil {
		l.Error("Multi-item current data query failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(multi)
}

// HandleTaxRates returns the stored market tax rates for a world.
// @Summary Get Market Tax Rates
// @Description Per-city market tax percentages for a world, from the latest upload.
// @Tags market
// @Produce json
// @Param world query string true "World name or ID"
// @Success 200 {object} models.TaxRates "Tax rates"
// @Failure 404 {object} map[string]string "Unknown world or no upload yet"
// @Router /api/tax-rates [get]
func (h *Handler) HandleTaxRates(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	target, _, ok := gamedata.ResolveWorldDc(h.service.gameData, c.Query("world"))
	if !ok || !target.IsWorld {
		return fiber.ErrNotFound
	}

	rates, err := h.service.store.TaxRates(c.Context(), target.WorldID)
	if err != nil {
		if err == ErrTaxRatesNotFound {
			return fiber.ErrNotFound
		}
		l.Error("Tax rate query failed", zap.Uint32("world_id", target.WorldID), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(rates)
}

// parseItemIDs splits a comma-delimited id list, dropping tokens that are
// not valid item ids and capping the result at MaxItemIDs.
func parseItemIDs(raw string) []uint32 {
	parts := strings.Split(raw, ",")
	ids := make([]uint32, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint32(id))
		if len(ids) == MaxItemIDs {
			break
		}
	}
	return ids
}

// parseEntries interprets the entries query value, falling back to
// DefaultEntries when absent or unparseable and clamping the rest.
func parseEntries(raw string) int {
	if raw == "" {
		return DefaultEntries
	}
	entries, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultEntries
	}
	return ClampEntries(entries)
}
