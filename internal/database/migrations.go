package database

import (
	"database/sql"
	"fmt"

	"handcrafted-haven/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func prepareGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// RunMigrations executes all pending database migrations
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if err := prepareGoose(); err != nil {
		return err
	}

	logger.Info("Checking for pending migrations...")

	if err := goose.Up(db, "."); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

// RollbackMigration reverts the most recently applied migration
func RollbackMigration(db *sql.DB, logger *zap.Logger) error {
	if err := prepareGoose(); err != nil {
		return err
	}

	if err := goose.Down(db, "."); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	logger.Info("Rolled back one migration")
	return nil
}

// GetMigrationStatus prints the applied state of every migration
func GetMigrationStatus(db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}

	return goose.Status(db, ".")
}
