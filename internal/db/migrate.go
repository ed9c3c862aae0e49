package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// dialectMap maps database drivers to Goose dialect names
var dialectMap = map[string]string{
	"sqlite": "sqlite3",
	"pgx":    "postgres",
}

// dialect returns the Goose dialect for the given driver.
// Unknown drivers are an error rather than passed through.
func dialect(driver string) (string, error) {
	d, ok := dialectMap[driver]
	if !ok {
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
	return d, nil
}

// setupGoose configures Goose with the correct dialect and filesystem
func setupGoose(driver string) error {
	// Set dialect based on driver
	d, err := dialect(driver)
	if err != nil {
		return err
	}

	err = goose.SetDialect(d)
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	// Get migrations subdirectory from embed.FS
	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}

	// Set base filesystem for migrations
	goose.SetBaseFS(migrationsDir)
	return nil
}

// RunMigrations applies every pending migration. Safe to call on each start.
func RunMigrations(db *sql.DB, driver string) error {
	err := setupGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Up(db, ".")
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("migrations completed successfully")
	return nil
}

// MigrateDown rolls back the most recent migration only.
func MigrateDown(db *sql.DB, driver string) error {
	err := setupGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Down(db, ".")
	if err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	slog.Info("rolled back one migration")
	return nil
}

// MigrationVersion reports the current schema version.
func MigrationVersion(db *sql.DB, driver string) (int64, error) {
	err := setupGoose(driver)
	if err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}
