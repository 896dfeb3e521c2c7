package shortage

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the shortage feature around an existing service.
func NewFeature(service *Service, logger *zap.Logger) *Feature {
	return &Feature{service: service, handler: NewHandler(service, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "shortage"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
