package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	APIBaseURL    string
	StatePath     string
	RedisAddr     string
	RedisPassword string

	// Identity fallback poll for writes that bypass store notifications.
	SessionPollInterval time.Duration

	// Pricing knobs shared by the cart summary and checkout.
	TaxRate               float64
	FreeShippingThreshold float64
	ShippingFee           float64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:        os.Getenv("APP_ENV"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000"),
		StatePath:     getEnv("STATE_PATH", defaultStatePath()),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionPollInterval: getEnvDuration("SESSION_POLL_INTERVAL", 2*time.Second),

		TaxRate:               getEnvFloat("TAX_RATE", 0.18),
		FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 5000),
		ShippingFee:           getEnvFloat("SHIPPING_FEE", 200),
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stride_state.json"
	}
	return filepath.Join(home, ".stride", "state.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
