// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/logger"
)

const (
	// EnvPrefix prefixes the environment variables bound to flags, e.g. JLS_WEB_CONFIG.
	EnvPrefix = "JLS_WEB"

	flagConfig = "config"
)

var (
	v = viper.New()

	rootCmd = &cobra.Command{
		Use:   "jls-web",
		Short: "jls-web serves the JL Surveying website and its admin dashboard",
		Long: `jls-web serves the JL Surveying & Services marketing website
(services, projects, news, about, contact) together with an admin dashboard
for editing its content, reading contact messages and changing site settings.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(flagConfig, "./etc/", "directory holding main.toml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag(flagConfig, rootCmd.PersistentFlags().Lookup(flagConfig)); err != nil {
		panic(err)
	}
}

// configPath returns the config directory from the flag or JLS_WEB_CONFIG.
func configPath() string {
	p := v.GetString(flagConfig)
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}

	return p
}

// loadConfig reads the configuration and initializes the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(configPath())
	if err != nil {
		return nil, err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
