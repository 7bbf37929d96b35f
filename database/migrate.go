package database

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationDir = "migrations"

var gooseSetup sync.Once

func setupGoose() error {
	var err error
	gooseSetup.Do(func() {
		goose.SetBaseFS(migrations)
		goose.SetLogger(gooseLogger{})
		err = goose.SetDialect("postgres")
	})
	return err
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) { log.Info().Msgf(format, v...) }
func (gooseLogger) Fatalf(format string, v ...any) { log.Fatal().Msgf(format, v...) }

// Migrate applies every pending migration.
func (d Database) Migrate(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return err
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, migrationDir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrateStep moves the schema |steps| migrations up (positive) or down (negative).
func (d Database) MigrateStep(ctx context.Context, steps int) error {
	if steps == 0 {
		return errs.NewInvalidFieldError("steps", "cannot be zero")
	}
	if err := setupGoose(); err != nil {
		return err
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}

	for ; steps > 0; steps-- {
		if err := goose.UpByOneContext(ctx, sqlDB, migrationDir); err != nil {
			return fmt.Errorf("migrate up one: %w", err)
		}
	}
	for ; steps < 0; steps++ {
		if err := goose.DownContext(ctx, sqlDB, migrationDir); err != nil {
			return fmt.Errorf("migrate down one: %w", err)
		}
	}
	return nil
}

// MigrationVersion reports the current schema version.
func (d Database) MigrationVersion(ctx context.Context) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, err
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

// MigrationStatus logs the applied/pending state of every migration.
func (d Database) MigrationStatus(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return err
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return goose.StatusContext(ctx, sqlDB, migrationDir)
}
