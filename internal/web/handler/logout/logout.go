// Package logout ends admin sessions.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/login"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

// Path is the logout route.
const Path = handler.AdminPath + "/logout"

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init initializes the logout handler. The database is not used.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *gorm.DB) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := session.End(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	return c.Redirect(login.Path)
}
