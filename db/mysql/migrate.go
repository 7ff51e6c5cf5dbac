package mysql

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
	"github.com/yatube/yatube-be/config"
)

// runMigrations brings the schema up to date before the session is opened.
func runMigrations(cfg *config.Config) error {
	sourceURL := "file://" + cfg.MigrationsPath
	dbURL := fmt.Sprintf("mysql://%s:%s@tcp(%s)/%s",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBName)

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info().Str("path", cfg.MigrationsPath).Msg("schema migrations up to date")
	return nil
}
