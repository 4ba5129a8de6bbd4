package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if db.gormEngine is not postgres, mysql or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine is not supported")

	// ErrEmptySQLitePath error if the sqlite engine is selected without a file path.
	ErrEmptySQLitePath = errors.New("toml config db.path can not be empty for sqlite")

	// ErrEmptyRedisAddr error if redis is enabled without an address.
	ErrEmptyRedisAddr = errors.New("toml config redis.addr can not be empty when redis is enabled")
)
