package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"app/config"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleForecastInsight generates a natural-language analysis of the last
// published forecast set using Gemini.
// POST /api/v1/restaurants/:restaurantId/forecast/insight
func HandleForecastInsight(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")

	var req models.AIInsightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.Prompt == "" {
		req.Prompt = "Summarize the demand outlook and highlight products that need attention."
	}

	forecasts := ForecastEngine.Forecasts(restaurantID)
	if len(forecasts) == 0 {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "No forecasts published yet. Run a refresh first.",
		})
	}

	analysis, err := generateForecastAnalysis(c.Context(), req.Prompt, forecasts)
	if err != nil {
		log.Printf("Forecast insight generation failed for restaurant %s: %v", restaurantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate analysis"})
	}

	return c.JSON(fiber.Map{"status": "success", "analysis": analysis})
}

// generateForecastAnalysis serializes the forecast set and asks Gemini for a
// concise read on it.
func generateForecastAnalysis(ctx context.Context, prompt string, forecasts []models.DemandForecast) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	jsonData, err := json.Marshal(forecasts)
	if err != nil {
		return "", fmt.Errorf("failed to serialize forecasts: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	analysisPrompt := fmt.Sprintf(
		`You are a helpful AI assistant for a restaurant back office. The user asked: "%s". Based on the following demand forecasts (days_until_stockout of -1 means no imminent stockout), provide a concise and helpful analysis:

		Data: %s`,
		prompt,
		string(jsonData),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(analysisPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	return fmt.Sprint(resp.Candidates[0].Content.Parts[0]), nil
}
