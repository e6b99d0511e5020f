package upload

import (
	"errors"

	"market-tracker/core/logger"
	"market-tracker/feature/upload/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for uploads.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the upload route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/api/upload/:apiKey", h.HandleUpload)
}

// HandleUpload accepts a market data upload from a trusted source.
// @Summary Upload Market Data
// @Description Accepts listings, sales, tax rates, and character data from a registered client.
// @Tags upload
// @Accept json
// @Produce plain
// @Param apiKey path string true "Client API key"
// @Param payload body models.Payload true "Upload payload"
// @Success 200 {string} string "Success"
// @Failure 400 {object} map[string]string "Malformed payload"
// @Failure 401 {object} map[string]string "Unknown API key"
// @Router /api/upload/{apiKey} [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var payload models.Payload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.ErrBadRequest
	}

	err := h.service.Process(c.Context(), c.Params("apiKey"), &payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrSourceNotFound):
			return fiber.ErrUnauthorized
		case errors.Is(err, ErrValidation):
			return fiber.ErrBadRequest
		default:
			l.Error("Upload failed", zap.Error(err))
			return fiber.ErrInternalServerError
		}
	}
	return c.SendString("Success")
}
