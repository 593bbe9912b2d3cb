package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the broker's runtime configuration.
type Config struct {
	Env               string
	HTTPPort          string
	LogLevel          string
	RateLimitCapacity int
	RateLimitRefill   float64
	MaxLogChunkBytes  int
	ShutdownTimeout   time.Duration
}

// Load reads configuration from environment variables with sane defaults
// for local development. A .env file in the working directory, if
// present, is loaded first; its absence is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RateLimitCapacity: getEnvInt("RATE_LIMIT_CAPACITY", 50),
		RateLimitRefill:   getEnvFloat("RATE_LIMIT_REFILL_PER_SEC", 20),
		MaxLogChunkBytes:  getEnvInt("MAX_LOG_CHUNK_BYTES", 1<<20),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
