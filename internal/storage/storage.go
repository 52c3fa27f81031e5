// Package storage opens the configured database, applies migrations and
// hands back the slot repository the word store persists through.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wordcards/internal/config"
	"wordcards/internal/repository"
	"wordcards/internal/repository/migrations"
	"wordcards/internal/repository/postgres"
	"wordcards/internal/repository/sqlite"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitedb "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Options tunes the connection retry loop
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultOptions waits up to a minute for the database to come up
var DefaultOptions = Options{MaxRetries: 30, RetryDelay: 2 * time.Second}

// Open connects to the configured database, runs migrations and returns the slot repository
func Open(cfg *config.Config, opts Options, logger *zap.Logger) (*sql.DB, repository.SlotRepository, error) {
	driverName := cfg.DriverName()

	db, err := connectDatabase(driverName, cfg.DSN(), opts, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := runMigrations(db, driverName, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	if driverName == "sqlite3" {
		// SQLite only supports one writer at a time
		db.SetMaxOpenConns(1)
		return db, sqlite.NewSlotRepo(db), nil
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, postgres.NewSlotRepo(db), nil
}

// connectDatabase opens the database with retries
func connectDatabase(driverName, dsn string, opts Options, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	attempts := opts.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		db, err = sql.Open(driverName, dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.String("driver", driverName),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(opts.RetryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.String("driver", driverName),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(opts.RetryDelay)
			continue
		}

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

// runMigrations applies the embedded migrations
func runMigrations(db *sql.DB, driverName string, logger *zap.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	var driver database.Driver
	switch driverName {
	case "postgres":
		driver, err = postgresdb.WithInstance(db, &postgresdb.Config{})
	case "sqlite3":
		driver, err = sqlitedb.WithInstance(db, &sqlitedb.Config{})
	default:
		return fmt.Errorf("unsupported driver %q", driverName)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully", zap.String("driver", driverName))
	}

	return nil
}
