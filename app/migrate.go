package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, func(cfg *config.Config, _ *gorm.DB) error {
			log.Info().Str("engine", cfg.DB.GormEngine).Msg("database schema is up to date")

			return nil
		})
	},
}
