package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	LogLevel    string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Directory snapshot
	DirectoryCacheTTL    time.Duration
	DirectoryRefreshSpec string // cron spec, e.g. "@every 5m"
	// Listing & export limits
	DefaultPageSize int
	MaxPageSize     int
	ExportMaxRows   int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Directory snapshot
		DirectoryCacheTTL:    time.Duration(getEnvInt("DIRECTORY_CACHE_TTL_SECONDS", 300)) * time.Second,
		DirectoryRefreshSpec: getEnv("DIRECTORY_REFRESH_SPEC", "@every 5m"),
		// Listing & export limits
		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 12),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 100),
		ExportMaxRows:   getEnvInt("EXPORT_MAX_ROWS", 5000),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Directory snapshot and rate limiting will be kept in process memory.")
	}
	if cfg.MaxPageSize < 1 || cfg.MaxPageSize > 100 {
		cfg.MaxPageSize = 100
	}
	if cfg.DefaultPageSize < 1 {
		cfg.DefaultPageSize = min(12, cfg.MaxPageSize)
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
