package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/config"
)

// seed creates the configured admin when admin_users is empty.
func seed(cfg *config.Config, db *gorm.DB) error {
	res, err := auth.NewService(db).EnsureAdmin(cfg.Admin)
	if err != nil {
		return err
	}

	if res == nil {
		return nil
	}

	ev := log.Warn().Str("email", res.User.Email)
	if res.Generated {
		// printed once, it is not stored anywhere in plain text
		ev = ev.Str("password", res.Password)
	}

	ev.Msg("created initial admin user, change the password after the first login")

	return nil
}
