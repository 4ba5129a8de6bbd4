package logger

import (
	"path"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults, applied to every zero value of a Rotation.
const (
	DefaultMaxSize    = 100 // megabytes
	DefaultMaxBackups = 5
	DefaultMaxAge     = 14 // days
)

// Console configures logging to stdout/stderr.
type Console struct {
	Enabled bool `toml:"enabled"`
	// Pretty switches from JSON lines to zerolog.ConsoleWriter.
	Pretty bool `toml:"pretty"`
}

// Rotation is one rolling log file.
type Rotation struct {
	Name       string `toml:"name"`
	MaxSize    int    `toml:"maxSize"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"`
}

// Writer returns the lumberjack logger for r below dir.
func (r Rotation) Writer(dir string) *lumberjack.Logger {
	if r.MaxSize == 0 {
		r.MaxSize = DefaultMaxSize
	}

	if r.MaxBackups == 0 {
		r.MaxBackups = DefaultMaxBackups
	}

	if r.MaxAge == 0 {
		r.MaxAge = DefaultMaxAge
	}

	return &lumberjack.Logger{
		Filename:   path.Join(dir, r.Name),
		MaxSize:    r.MaxSize,
		MaxAge:     r.MaxAge,
		MaxBackups: r.MaxBackups,
	}
}

// LogFile configures file logging, one file per level group plus the access log.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	Access Rotation `toml:"access"`
	Error  Rotation `toml:"error"`
	Info   Rotation `toml:"info"`
	Trace  Rotation `toml:"trace"`
	Warn   Rotation `toml:"warn"`
}

// Log is the logging section of main.toml.
type Log struct {
	Level string // trace, debug, info, warn, error
	// Name is added to every entry as "app" and labels the log metric.
	Name string

	// AccessToConsole also writes the access log to stdout when Console is enabled.
	AccessToConsole bool
	ReportCaller    bool
	// SilenceProbes drops access log entries of health and metrics probes.
	SilenceProbes bool

	Console Console
	File    LogFile `toml:"file"`
}
