package config

import (
	"fmt"
	"os"

	"note-cache/models"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	LogLevel  string
	DBPath    string
	SortOrder models.SortOrder
}

var AppConfig *Config

// Load reads .env (if present) and the environment into AppConfig
func Load() error {
	_ = godotenv.Load()

	sortOrder, err := models.ParseSortOrder(GetEnv("SORT_ORDER", ""))
	if err != nil {
		return fmt.Errorf("SORT_ORDER: %w", err)
	}

	AppConfig = &Config{
		Env:       GetEnv("ENV", "development"),
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		DBPath:    GetEnv("DB_PATH", "./data/notes.db"),
		SortOrder: sortOrder,
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
