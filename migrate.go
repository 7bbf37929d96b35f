package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
)

var (
	migrateSteps int
	genOutPath   string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run the embedded SQL migrations against DATABASE_URL.

Subcommands:
  up      - Apply pending migrations (or --steps of them)
  down    - Roll back --steps migrations (default 1)
  status  - Show applied and pending migrations`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.Database) error {
			if migrateSteps > 0 {
				return db.MigrateStep(ctx, migrateSteps)
			}
			return db.Migrate(ctx)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := migrateSteps
		if steps <= 0 {
			steps = 1
		}
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.Database) error {
			return db.MigrateStep(ctx, -steps)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.Database) error {
			if err := db.MigrationStatus(ctx); err != nil {
				return err
			}
			version, err := db.MigrationVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Current version: %d\n", version)
			return nil
		})
	},
}

var generateModelsCmd = &cobra.Command{
	Use:   "generate-models",
	Short: "Generate gorm/gen query helpers for the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.Database) error {
			log.Info().Str("out", genOutPath).Msg("Generating models and query helpers...")
			return models.GenerateModels(db.DB(), genOutPath)
		})
	},
}

var columnReportCmd = &cobra.Command{
	Use:   "column-report",
	Short: "Compare live table columns with the model structs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.Database) error {
			report, err := models.FindColumnMismatches(db.DB())
			if err != nil {
				return err
			}
			if total := models.WriteColumnReport(os.Stdout, report); total > 0 {
				return fmt.Errorf("%d mismatched columns", total)
			}
			return nil
		})
	},
}

func init() {
	migrateCmd.PersistentFlags().IntVar(&migrateSteps, "steps", 0, "number of migrations to apply or roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	generateModelsCmd.Flags().StringVar(&genOutPath, "out", "./query", "output directory for generated code")

	rootCmd.AddCommand(migrateCmd, generateModelsCmd, columnReportCmd)
}

// withDatabase opens DATABASE_URL, runs fn and closes the pool.
func withDatabase(ctx context.Context, fn func(context.Context, database.Database) error) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	db, err := openDatabase(ctx, c)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(ctx, database.New(db))
}
