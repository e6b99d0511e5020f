package extra

import (
	"market-tracker/core/gamedata"
	coreredis "market-tracker/core/redis"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Extra feature.
func NewFeature(db *gorm.DB, rdb coreredis.Client, gameData gamedata.Provider, logger *zap.Logger) *Feature {
	svc := NewService(NewStore(db, rdb), gameData, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "extra"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
