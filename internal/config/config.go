package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	OwnerIDs []int64
	SlotKey  string
	Storage  StorageConfig
	Database DatabaseConfig
	Fetch    FetchConfig
}

// StorageConfig selects where the word slot lives
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// FetchConfig holds remote import settings
type FetchConfig struct {
	Timeout  time.Duration
	MaxBytes int64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		SlotKey:  getEnv("SLOT_KEY", "@english_words"),
		Storage: StorageConfig{
			Driver:     getEnv("STORAGE_DRIVER", DriverSQLite),
			SQLitePath: getEnv("SQLITE_PATH", "wordcards.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordcards"),
			User:     getEnv("DB_USER", "wordcards"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	timeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.Fetch.Timeout = timeout

	maxBytes, err := strconv.ParseInt(getEnv("FETCH_MAX_BYTES", "4194304"), 10, 64)
	if err != nil || maxBytes <= 0 {
		return nil, fmt.Errorf("invalid FETCH_MAX_BYTES: %q", os.Getenv("FETCH_MAX_BYTES"))
	}
	cfg.Fetch.MaxBytes = maxBytes

	ownerIDs, err := parseIDs(os.Getenv("BOT_OWNER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOT_OWNER_IDS: %w", err)
	}
	cfg.OwnerIDs = ownerIDs

	// Validate required fields
	switch cfg.Storage.Driver {
	case DriverSQLite:
		if cfg.Storage.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required")
		}
	case DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.Storage.Driver)
	}

	return cfg, nil
}

// ValidateBot checks the settings only the Telegram bot needs
func (c *Config) ValidateBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	return nil
}

// DriverName returns the database/sql driver for the configured storage
func (c *Config) DriverName() string {
	if c.Storage.Driver == DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// DSN returns the connection string for the configured storage
func (c *Config) DSN() string {
	if c.Storage.Driver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.Name,
		)
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", c.Storage.SQLitePath)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
