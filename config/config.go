package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultPlaceholderImage is used when a villa record carries no image path.
const DefaultPlaceholderImage = "https://i.pinimg.com/73x/89/c1/df/89c1dfaf3e2bf035718cf2a76a16fd38.jpg"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	SessionFilePath string

	PlaceholderImageURL string
	TaxRate             float64

	UploadConcurrency int
	ExportPath        string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 15000)) * time.Millisecond,
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),

		SessionFilePath: getEnv("SESSION_FILE", defaultSessionPath()),

		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", DefaultPlaceholderImage),
		TaxRate:             getEnvFloat("TAX_RATE", 0.10),

		UploadConcurrency: getEnvInt("UPLOAD_CONCURRENCY", 3),
		ExportPath:        getEnv("EXPORT_PATH", "./output"),
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./session.json"
	}
	return filepath.Join(home, ".villa-client", "session.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
