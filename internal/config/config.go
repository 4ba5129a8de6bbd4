// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON holds a JSON document merged over main.toml.
	EnvConfigJSON = "JLS_WEB_CONFIG_JSON"

	defaultShutDownTime  = 5
	defaultSessionExpiry = 24 * time.Hour
	defaultCacheSize     = 256
	defaultCacheTTL      = 10 * time.Minute
	defaultRedisChannel  = "jls-web:revalidate"
	defaultAdminEmail    = "admin@jlsurveying.com"
	defaultAdminName     = "Admin User"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon cannot start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EnginePostgres
	case EnginePostgres, EngineMySQL, EngineSQLite:
	default:
		return errors.Wrapf(ErrUnknownGormEngine, "%s: %q", invalidErrMessage, c.DB.GormEngine)
	}

	if c.DB.GormEngine == EngineSQLite && c.DB.Path == "" {
		return errors.Wrap(ErrEmptySQLitePath, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Webserver.CacheSize <= 0 {
		c.Webserver.CacheSize = defaultCacheSize
	}

	if c.Webserver.CacheTTL <= 0 {
		c.Webserver.CacheTTL = defaultCacheTTL
	}

	if c.Admin.Email == "" {
		c.Admin.Email = defaultAdminEmail
	}

	if c.Admin.Name == "" {
		c.Admin.Name = defaultAdminName
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.Wrap(ErrEmptyRedisAddr, invalidErrMessage)
	}

	if c.Redis.Channel == "" {
		c.Redis.Channel = defaultRedisChannel
	}

	return nil
}
