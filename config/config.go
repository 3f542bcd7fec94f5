package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	appDirName     = "sticker-notes"
	databaseName   = "notes_database.sqlite3"
	defaultMaxSize = 5 << 20
)

type Config struct {
	Port          string
	Env           string
	DBPath        string
	BusyTimeout   time.Duration
	MaxImageBytes int
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:          GetEnv("PORT", "3000"),
		Env:           GetEnv("ENV", "development"),
		DBPath:        GetEnv("NOTES_DB_PATH", DefaultDBPath()),
		BusyTimeout:   GetDuration("NOTES_DB_BUSY_TIMEOUT", time.Second),
		MaxImageBytes: GetInt("NOTES_MAX_IMAGE_BYTES", defaultMaxSize),
	}

	if AppConfig.BusyTimeout <= 0 {
		log.Fatal("NOTES_DB_BUSY_TIMEOUT must be positive")
	}
	if AppConfig.MaxImageBytes <= 0 {
		log.Fatal("NOTES_MAX_IMAGE_BYTES must be positive")
	}
}

// DefaultDBPath places the database in the per-user application data
// directory, falling back to the working directory.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "data", databaseName)
	}
	return filepath.Join(dir, appDirName, databaseName)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func GetInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
