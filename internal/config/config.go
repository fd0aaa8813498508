package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings for the application.
// The API key field only seeds the key entry; the value the user types
// in the window is what the generation workflow actually uses.
type Config struct {
	APIKey      string
	APIBaseURL  string
	HTTPTimeout time.Duration
	LogLevel    string
	Env         string
}

// Load reads configuration from the environment, consulting an optional
// .env file first. Missing values fall back to defaults; Load never fails.
func Load() Config {
	_ = godotenv.Load(".env", ".env.local")

	return Config{
		APIKey:      os.Getenv("XAI_API_KEY"),
		APIBaseURL:  getenv("MIRROR_API_BASE_URL", "https://api.x.ai"),
		HTTPTimeout: getDuration("MIRROR_HTTP_TIMEOUT", 60*time.Second),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Env:         getenv("APP_ENV", "development"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
