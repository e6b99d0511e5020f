package extra

import (
	"market-tracker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for auxiliary upload data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the auxiliary data routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/api/extra/content/:contentId", h.HandleContentID)
	app.Get("/api/extra/stats/upload-history", h.HandleUploadHistory)
	app.Get("/api/extra/stats/world-upload-counts", h.HandleWorldUploadCounts)
	app.Get("/api/extra/stats/recently-updated", h.HandleRecentlyUpdated)
}

// HandleContentID returns the character name stored for a content ID.
// @Summary Get Character by Content ID
// @Description Character name most recently uploaded for a hashed content ID.
// @Tags extra
// @Produce json
// @Param contentId path string true "Hashed content ID"
// @Success 200 {object} models.ContentID "Content ID mapping"
// @Failure 404 {object} map[string]string "No character stored"
// @Router /api/extra/content/{contentId} [get]
func (h *Handler) HandleContentID(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	row, err := h.service.ContentID(c.Context(), c.Params("contentId"))
	if err != nil {
		if err == ErrContentIDNotFound {
			return fiber.ErrNotFound
		}
		l.Error("Content ID lookup failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(row)
}

// HandleUploadHistory returns the daily upload counts.
// @Summary Get Upload History
// @Description Daily upload counts for the trailing 30 days, today first.
// @Tags extra
// @Produce json
// @Success 200 {object} models.UploadHistoryView "Daily counts"
// @Router /api/extra/stats/upload-history [get]
func (h *Handler) HandleUploadHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view, err := h.service.UploadHistory(c.Context())
	if err != nil {
		l.Error("Upload history query failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(view)
}

// HandleWorldUploadCounts returns per-world upload totals.
// @Summary Get World Upload Counts
// @Description Upload totals and proportions per world, keyed by world name.
// @Tags extra
// @Produce json
// @Success 200 {object} map[string]models.WorldUploadCount "Per-world counts"
// @Router /api/extra/stats/world-upload-counts [get]
func (h *Handler) HandleWorldUploadCounts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view, err := h.service.WorldUploadCounts(c.Context())
	if err != nil {
		l.Error("World upload count query failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(view)
}

// HandleRecentlyUpdated returns the most recently uploaded items.
// @Summary Get Recently Updated Items
// @Description Most recently uploaded item IDs, newest first.
// @Tags extra
// @Produce json
// @Success 200 {object} models.RecentlyUpdatedView "Item IDs"
// @Router /api/extra/stats/recently-updated [get]
func (h *Handler) HandleRecentlyUpdated(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view, err := h.service.RecentlyUpdated(c.Context())
	if err != nil {
		l.Error("Recently-updated query failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(view)
}
