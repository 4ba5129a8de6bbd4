// Package db opens the gorm connection for the configured engine and migrates the schema.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/dsn"
	"github.com/jlsurveying/jls-web/internal/db/models"
)

const (
	defaultConnectRetries    = 1
	defaultConnectRetryDelay = 2 * time.Second
)

// ErrConfigNil is returned by Open when no configuration was given.
var ErrConfigNil = errors.New("db: config is nil")

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres, "":
		return postgres.Open(dsn.Create(cfg)), nil
	case config.EngineMySQL:
		return gormmysql.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}
}

// Open connects to the database, retrying while the server is not reachable yet.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	attempts := cfg.DB.ConnectRetries
	if attempts == 0 {
		attempts = defaultConnectRetries
	}

	delay := cfg.DB.ConnectRetryDelay
	if delay == 0 {
		delay = defaultConnectRetryDelay
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.DevMode {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := retry.DoWithData(func() (*gorm.DB, error) {
		conn, openErr := gorm.Open(dialector, gormCfg)
		if openErr != nil {
			return nil, openErr
		}

		sqlDB, openErr := conn.DB()
		if openErr != nil {
			return nil, openErr
		}

		if openErr = sqlDB.PingContext(ctx); openErr != nil {
			_ = sqlDB.Close()

			return nil, openErr
		}

		return conn, nil
	},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			log.Warn().Err(err).
				Uint("attempt", attempt+1).
				Str("engine", cfg.DB.GormEngine).
				Msg("database not reachable, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.DB.GormEngine, err)
	}

	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	return nil
}
