package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)

	// --- Forecast Routes ---
	restaurant := api.Group("/restaurants/:restaurantId", middleware.JWTMiddleware, middleware.RoleRequired("admin", "merchant"))

	forecast := restaurant.Group("/forecast")
	forecast.Get("/", handlers.HandleGetForecasts)
	forecast.Post("/refresh", handlers.HandleRefreshForecasts)
	forecast.Get("/top-demand", handlers.HandleGetTopDemand)
	forecast.Get("/critical-stock", handlers.HandleGetCriticalStock)
	forecast.Get("/trends", handlers.HandleGetTrends)
	forecast.Get("/history", handlers.HandleGetHistory)
	forecast.Post("/insight", handlers.HandleForecastInsight)
}
