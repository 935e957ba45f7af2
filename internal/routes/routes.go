// Package routes defines the API routing configuration.
package routes

import (
	"feecalc/internal/handlers"
	"feecalc/internal/services/estimate"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers every endpoint of the estimator API.
func SetupRoutes(app *fiber.App, estimateService *estimate.Service, health *handlers.HealthHandler) {
	estimateHandler := handlers.NewEstimateHandler(estimateService)

	app.Get("/health", health.HealthCheck)

	api := app.Group("/api")
	api.Get("/rates", estimateHandler.GetRates)
	api.Post("/estimates", estimateHandler.CreateEstimate)
	api.Post("/mix", handlers.SetMethodPercentage)

	sessions := api.Group("/sessions")
	sessions.Get("/:sessionId/calculations", estimateHandler.GetHistory)

	events := api.Group("/events")
	events.Post("/feature-toggle", estimateHandler.TrackFeatureToggle)
}
