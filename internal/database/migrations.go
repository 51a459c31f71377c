package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/migrations"
)

// Migrator applies the embedded schema migrations.
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// NewMigrator opens a database/sql handle on the pool and prepares the
// embedded migration source.
func NewMigrator(db *Database, log *logger.Logger) (*Migrator, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return &Migrator{m: m, log: log.Named("migrations")}, nil
}

// Up applies every pending migration. It is a no-op on an up-to-date schema.
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("No migrations to apply (database up-to-date)", nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ := mg.m.Version()
	mg.log.Info("Applied migrations successfully", map[string]interface{}{"version": version})
	return nil
}

// Down rolls back the given number of migrations.
func (mg *Migrator) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	err := mg.m.Steps(-steps)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	mg.log.Info("Rolled back migrations", map[string]interface{}{"steps": steps})
	return nil
}

// Version reports the current schema version and whether it is dirty.
// A fresh database reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// Close releases the migration source and database handle.
func (mg *Migrator) Close() {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		mg.log.Warn("Failed to close migration source", map[string]interface{}{"error": srcErr.Error()})
	}
	if dbErr != nil {
		mg.log.Warn("Failed to close migration database", map[string]interface{}{"error": dbErr.Error()})
	}
}
