// Package dbtest opens a migrated PostgreSQL database for integration tests.
package dbtest

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/florenciacomuzzi/amp-report/internal/config"
	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
)

// Config returns the test database configuration, overridable through the
// usual DB_* environment variables.
func Config() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		Name:     envOr("DB_NAME", "amp_report_test"),
		User:     envOr("DB_USER", "postgres"),
		Password: envOr("DB_PASSWORD", "postgres"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
		PoolMin:  1,
		PoolMax:  envInt("DB_POOL_MAX", 5),
	}
}

// Open connects to the test database and applies all migrations. The test is
// skipped in -short mode or when the database is unreachable.
func Open(t *testing.T) *database.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.NewPostgresPool(ctx, Config())
	if err != nil {
		t.Skipf("Skipping integration test, database unavailable: %v", err)
	}
	t.Cleanup(db.Close)

	migrator, err := database.NewMigrator(db, logger.New("test"))
	if err != nil {
		t.Fatalf("Failed to create migrator: %v", err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return db
}

// Truncate empties the given tables, cascading to dependents.
func Truncate(t *testing.T, db *database.Database, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := db.Pool.Exec(context.Background(), "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("Failed to truncate %s: %v", table, err)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
