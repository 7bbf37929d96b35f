package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	log.Info().Msg("Initializing app...")

	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	authenticator, err := auth.New(auth.Config{
		AdminPassword:     config.GetString(c, "ADMIN_PASSWORD", ""),
		AdminPasswordHash: config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         config.GetString(c, "JWT_SECRET", ""),
		TTL:               time.Duration(config.GetInt(c, "TOKEN_TTL_HOURS", 24)) * time.Hour,
	})
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
	currentDB := database.New(db)

	if config.GetBool(c, "MIGRATE_ON_START", false) {
		if err := currentDB.Migrate(ctx); err != nil {
			return err
		}
	}

	deps := api.DependenciesFrom(currentDB, authenticator)

	if redisURL := config.GetString(c, "REDIS_URL", ""); redisURL != "" {
		client, err := cache.Connect(ctx, redisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Cache = cache.NewListCache(client, config.GetSeconds(c, "CACHE_TTL_SECONDS", int(cache.DefaultTTL.Seconds())))
	}

	if bucket := config.GetString(c, "S3_BUCKET", ""); bucket != "" {
		uploader, err := storage.New(ctx, bucket, config.GetString(c, "S3_PUBLIC_BASE_URL", ""))
		if err != nil {
			return err
		}
		deps.Uploader = uploader
	}

	server, err := api.NewServer(c, deps)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Err(fatalErr).Msg("Closing server")

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and reports it on errChannel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
