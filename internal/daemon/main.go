// Package daemon wires the database, session storage, page cache and web
// service together and runs them.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/cache"
	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db"
	"github.com/jlsurveying/jls-web/internal/web"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

// ErrConfigNil is returned by New without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	redis      redis.UniversalClient
	cancel     context.CancelFunc
	webService *web.Service
}

// New opens and migrates the database, makes sure an admin exists and
// prepares the web service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(gdb); err != nil {
		return nil, err
	}

	if err = seed(cfg, gdb); err != nil {
		return nil, err
	}

	storage := newSessionStorage(cfg, gdb)
	session.Init(storage, cfg.Webserver.Session.ExpiryTime)

	d := &Daemon{
		cfg:     cfg,
		db:      gdb,
		storage: storage,
	}

	pages := web.NewPageCache(cfg)

	var rv cache.Revalidator = pages

	if cfg.Redis.Enabled {
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err = d.redis.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis is not reachable, revalidation stays local until it is")
		}

		broadcaster := cache.NewBroadcaster(pages, d.redis, cfg.Redis.Channel)
		rv = broadcaster

		listenCtx, cancel := context.WithCancel(context.Background())
		d.cancel = cancel

		go func() {
			if err := broadcaster.Listen(listenCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("revalidation listener stopped")
			}
		}()

		log.Info().Str("channel", cfg.Redis.Channel).Str("instance", broadcaster.ID()).
			Msg("page cache revalidation is shared through redis")
	}

	d.webService = web.New(cfg, gdb, pages, rv)

	return d, nil
}

// Start runs the web service until a termination signal arrives.
func (d *Daemon) Start() error {
	addr := ":" + strconv.Itoa(d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

	if err := d.webService.Start(addr); err != nil {
		return fmt.Errorf("web service: %w", err)
	}

	d.Close()

	return nil
}

// Close releases the background listeners, storage and database.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}

	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}

	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close session storage")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
