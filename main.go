package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"app/config"
	"app/database"
	"app/forecast"
	"app/handlers"
	"app/routes"
	"app/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Set up the application configuration
	config.AppConfig.JWTSecret = jwtSecret
	config.AppConfig.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		config.AppConfig.ListenAddr = addr
	}
	if interval := os.Getenv("FORECAST_REFRESH_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			log.Fatalf("Invalid FORECAST_REFRESH_INTERVAL: %v", err)
		}
		config.AppConfig.RefreshInterval = d
	}

	// Initialize database
	database.Connect(databaseURL)
	defer database.Close()

	// Wire the forecasting engine over the Postgres store
	forecastStore := store.NewForecastStore(database.GetDB())
	engine := forecast.NewEngine(forecastStore, forecastStore, forecastStore)
	engine.SetLookback(config.AppConfig.LookbackDays)
	engine.SetStockTimeout(config.AppConfig.StockTimeout)
	handlers.InitForecastEngine(engine)

	// Start the scheduled refresh loop
	scheduler := forecast.NewScheduler(engine, forecastStore, config.AppConfig.RefreshInterval)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Shut down cleanly on SIGINT/SIGTERM so an in-flight refresh is
	// discarded rather than half-published.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server")
		scheduler.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	if err := app.Listen(config.AppConfig.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
