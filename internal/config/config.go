package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env             string
	DatabaseURL     string
	PageSize        int
	CacheTTL        time.Duration
	RefreshInterval time.Duration
}

// Load 加载配置
func Load() *Config {
	pageSize, _ := strconv.Atoi(getEnv("PAGE_SIZE", "20"))
	cacheMinutes, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "5"))
	refreshHours, _ := strconv.Atoi(getEnv("REFRESH_INTERVAL_HOURS", "1"))

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "medianexus")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		DatabaseURL:     dbURL,
		PageSize:        pageSize,
		CacheTTL:        time.Duration(cacheMinutes) * time.Minute,
		RefreshInterval: time.Duration(refreshHours) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
