package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio backend: projects, blogs and the admin API",
	Long: `Serves the public portfolio API and the token-gated admin API.

Running without a subcommand is the same as "portfolio serve".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .env, overlays SSM parameters and applies LOG_LEVEL.
func loadConfig(ctx context.Context) (map[string]string, error) {
	c := config.Load(envFile)
	if err := config.OverlaySSM(ctx, c); err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil {
		log.Warn().Str("LOG_LEVEL", c["LOG_LEVEL"]).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	return c, nil
}

func openDatabase(ctx context.Context, c map[string]string) (*gorm.DB, error) {
	level := logger.Warn
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}
	return database.Open(ctx, database.Options{
		DSN:           config.GetString(c, "DATABASE_URL", ""),
		ReplicaDSN:    config.GetString(c, "DATABASE_REPLICA_URL", ""),
		SlowThreshold: config.GetSeconds(c, "DB_SLOW_QUERY_SECONDS", 10),
		LogLevel:      level,
	})
}
