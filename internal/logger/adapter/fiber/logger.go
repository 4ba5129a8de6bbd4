// Package fiber provides the zerolog based access log middleware for the web server.
package fiber

import (
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jlsurveying/jls-web/internal/logger"
)

// PerformanceHeader carries the request handling time in seconds.
const PerformanceHeader = "X-Performance"

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError max-age caching on chain errors.
	CacheControlError string

	// SilentPaths are handled but never logged, e.g. /checkalive.
	// Only honored when Config.SilenceProbes is set.
	SilentPaths []string
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]
	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// newAccessLogger builds the zerolog logger writing the access log.
func newAccessLogger(cfg logger.Log) zerolog.Logger {
	var writers []io.Writer

	if cfg.File.Enabled {
		if fw := newRollingAccessFile(cfg); fw != nil {
			writers = append(writers, fw)
		}
	}

	// console access log needs the console logger enabled as well
	if cfg.Console.Enabled && cfg.AccessToConsole {
		var out io.Writer = os.Stdout
		if cfg.Console.Pretty {
			out = zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			}
		}

		writers = append(writers, out)
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)
}

// New creates a new fiber access logging middleware using zerolog.
func New(config ...Config) fiber.Handler {
	var (
		cfg        = configDefault(config...)
		access     = newAccessLogger(cfg.Config)
		once       sync.Once
		errHandler fiber.ErrorHandler
		silent     = make(map[string]struct{}, len(cfg.SilentPaths))
	)

	for _, p := range cfg.SilentPaths {
		silent[p] = struct{}{}
	}

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		once.Do(func() {
			errHandler = ctx.App().ErrorHandler
		})

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errH := errHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck // ok here
				ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Locals("elapsed", elapsed)
		ctx.Response().Header.Set(PerformanceHeader, strconv.FormatFloat(elapsed, 'f', 6, 64))

		if _, ok := silent[ctx.Path()]; ok && cfg.Config.SilenceProbes {
			return nil
		}

		// fasthttp normalizes the path, log the raw one
		uri := ctx.Path()
		if qs := ctx.Request().URI().QueryString(); len(qs) > 0 {
			uri += "?" + string(qs)
		}

		ev := access.Log().Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64(PerformanceHeader, elapsed).
			Str("URI", uri).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if hit := ctx.GetRespHeader("X-Cache"); hit != "" {
			ev.Str("cache", hit)
		}

		if chainErr != nil {
			ev.Err(chainErr)
		}

		ev.Send()

		return nil
	}
}

// newRollingAccessFile writes the access log through lumberjack.
func newRollingAccessFile(cfg logger.Log) io.Writer {
	if !logger.EnsureDir(cfg.File.Path) {
		return nil
	}

	return cfg.File.Access.Writer(cfg.File.Path)
}
