package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/medtrack/internal/config"
	"github.com/templui/medtrack/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations (DB_DRIVER, DB_CONNECTION)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *sqlx.DB, driver string) error {
				return db.RunMigrations(database.DB, driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *sqlx.DB, driver string) error {
				return db.MigrateDown(database.DB, driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *sqlx.DB, driver string) error {
				version, err := db.MigrationVersion(database.DB, driver)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			})
		},
	})

	return cmd
}

func withDB(fn func(database *sqlx.DB, driver string) error) error {
	cfg := config.Load()
	if !cfg.IsPersistent() {
		return fmt.Errorf("DB_DRIVER=%s has no schema, use sqlite or pgx", cfg.DBDriver)
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer database.Close()

	return fn(database, cfg.DBDriver)
}
