// Package logger configures the global zerolog logger used by jls-web.
package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// LevelWriter routes entries by level:
// trace, debug+info, warn, and error or worse each get their own writer.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init replaces the global logger according to cfg.
// With neither Console nor File enabled nothing is written.
func Init(cfg Log) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrapf(err, "loglevel %s is not supported", cfg.Level)
	}

	if cfg.Name == "" {
		return ErrNameIsEmpty
	}

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		if fw := newFileWriter(cfg.File); fw != nil {
			writers = append(writers, fw)
		}
	}

	zerolog.SetGlobalLevel(level)
	zerolog.ErrorHandler = writeErrorHandler

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewMetricsHook(cfg.Name)).
		With().
		Timestamp().
		Str("app", cfg.Name)

	if cfg.ReportCaller {
		if level == zerolog.TraceLevel {
			zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
			ctx = ctx.Stack()
		} else {
			ctx = ctx.Caller()
		}
	}

	log.Logger = ctx.Logger()

	return nil
}

// EnsureDir creates the log directory, logging and returning false on failure.
func EnsureDir(dir string) bool {
	if dir == "" {
		return true
	}

	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
		log.Error().Err(err).Str("path", dir).Msg("can't create log directory")

		return false
	}

	return true
}

func newFileWriter(f LogFile) io.Writer {
	if !EnsureDir(f.Path) {
		return nil
	}

	return &LevelWriter{
		ErrorWriter: f.Error.Writer(f.Path),
		InfoWriter:  f.Info.Writer(f.Path),
		TraceWriter: f.Trace.Writer(f.Path),
		WarnWriter:  f.Warn.Writer(f.Path),
	}
}

// NewConsoleWriter writes info and debug to stdout, everything else to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(out io.Writer) io.Writer {
		if !cfg.Console.Pretty {
			return out
		}

		return zerolog.ConsoleWriter{Out: out, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		ErrorWriter: wrap(os.Stderr),
		InfoWriter:  wrap(os.Stdout),
		TraceWriter: wrap(os.Stderr),
		WarnWriter:  wrap(os.Stderr),
	}
}
