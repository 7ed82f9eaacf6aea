package config

import "time"

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret       string
	GeminiAPIKey    string
	ListenAddr      string
	RefreshInterval time.Duration
	StockTimeout    time.Duration
	LookbackDays    int
}

// AppConfig holds the application-wide configuration
var AppConfig = Config{
	ListenAddr:      ":3000",
	RefreshInterval: time.Hour,
	StockTimeout:    5 * time.Second,
	LookbackDays:    90,
}
