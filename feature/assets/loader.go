package assets

import (
	"asset-janitor/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	engine  *reconcile.Engine
	handler *Handler
}

// NewFeature creates the storage maintenance feature.
func NewFeature(engine *reconcile.Engine, logger *zap.Logger) *Feature {
	return &Feature{engine: engine, handler: NewHandler(engine, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "assets"
}

// IsEnabled returns true when an engine is configured.
func (f *Feature) IsEnabled() bool {
	return f.engine != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
