package handlers

import (
	"errors"
	"log"

	"app/forecast"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// ForecastEngine is the shared forecasting engine, set once during startup.
var ForecastEngine *forecast.Engine

// InitForecastEngine wires the engine the forecast handlers serve from.
func InitForecastEngine(engine *forecast.Engine) {
	ForecastEngine = engine
}

// HandleGetForecasts returns the last published forecast set for a restaurant.
// GET /api/v1/restaurants/:restaurantId/forecast
func HandleGetForecasts(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")

	forecasts, synthetic, updatedAt := ForecastEngine.Snapshot(restaurantID)
	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       forecasts,
		"synthetic":  synthetic,
		"updated_at": updatedAt,
	})
}

// HandleRefreshForecasts recomputes the forecast set for a restaurant and
// returns the freshly published cycle.
// POST /api/v1/restaurants/:restaurantId/forecast/refresh
func HandleRefreshForecasts(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")

	forecasts, err := ForecastEngine.Refresh(c.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, forecast.ErrNoData) {
			return c.JSON(fiber.Map{
				"status":  "success",
				"message": "No historical data available yet. Add products and record consumption to generate forecasts.",
				"data":    forecasts,
			})
		}
		log.Printf("Forecast refresh failed for restaurant %s: %v", restaurantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to refresh forecasts"})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Forecasts updated",
		"data":    forecasts,
	})
}

// HandleGetTopDemand returns the highest-consumption products.
// GET /api/v1/restaurants/:restaurantId/forecast/top-demand?limit=10
func HandleGetTopDemand(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	limit := utils.ParseBoundedInt(c.Query("limit"), 10, 1, 100)

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   ForecastEngine.TopDemand(restaurantID, limit),
	})
}

// HandleGetCriticalStock returns products projected to stock out within the
// threshold.
// GET /api/v1/restaurants/:restaurantId/forecast/critical-stock?days=7
func HandleGetCriticalStock(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	days := utils.ParseBoundedInt(c.Query("days"), 7, 1, 365)

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   ForecastEngine.CriticalStock(restaurantID, days),
	})
}

// HandleGetTrends returns the display-friendly trend reports for the last
// published forecast set.
// GET /api/v1/restaurants/:restaurantId/forecast/trends
func HandleGetTrends(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   ForecastEngine.Trends(restaurantID),
	})
}

// HandleGetHistory returns the aggregated daily consumption history used for
// charting.
// GET /api/v1/restaurants/:restaurantId/forecast/history
func HandleGetHistory(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")

	sales, err := ForecastEngine.History(c.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, forecast.ErrNoData) {
			return c.JSON(fiber.Map{
				"status":  "success",
				"message": "No historical data available yet",
				"data":    []interface{}{},
			})
		}
		log.Printf("History fetch failed for restaurant %s: %v", restaurantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch consumption history"})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   sales,
	})
}
