package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Options struct {
	DSN string
	// ReplicaDSN, when set, routes reads outside transactions to a replica.
	ReplicaDSN    string
	SlowThreshold time.Duration
	LogLevel      logger.LogLevel
}

// Open connects to postgres and verifies the connection.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	if opts.DSN == "" {
		return nil, errors.New("database: DSN is required")
	}
	if opts.SlowThreshold == 0 {
		opts.SlowThreshold = 10 * time.Second
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      NewGormLogger(log.Logger, opts.SlowThreshold, opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if opts.ReplicaDSN != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  opts.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		log.Info().Msg("Read replica registered")
	}

	var result int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewGormLogger adapts zerolog to gorm's logger interface.
func NewGormLogger(l zerolog.Logger, slowThreshold time.Duration, level logger.LogLevel) logger.Interface {
	return logger.New(gormWriter{l.With().Str("component", "gorm").Logger()}, logger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.logger.Warn().Msgf(format, args...)
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique violation on
// constraint (any constraint when empty).
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}
