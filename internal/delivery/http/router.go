package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Interactive map page
	app.Get("/", handler.Index)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/segments", handler.ListSegments)
		api.Get("/predict", handler.Predict)
		api.Get("/traffic", handler.Traffic)
	}
}
