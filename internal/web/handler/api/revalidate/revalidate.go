// Package revalidate drops cached public pages on request.
package revalidate

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/cache"
	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/middleware/auth"
)

const (
	// Path is the revalidation endpoint.
	Path = handler.APIPath + "/revalidate"

	// TokenHeader carries the shared secret for callers without a session.
	TokenHeader = "X-Revalidate-Token"
)

// Service is the revalidation handler.
type Service struct {
	handler.Service
	cfg *config.Config

	// Revalidator drops the cached pages.
	Revalidator cache.Revalidator
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg

	app.Post(Path, s.authorize, s.Post)
}

// authorize accepts the shared token or falls back to an admin session.
func (s *Service) authorize(c *fiber.Ctx) error {
	want := s.cfg.Webserver.RevalidateToken
	got := c.Get(TokenHeader)

	if want != "" && got != "" && subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1 {
		return c.Next()
	}

	return auth.RequireAdminAPI(c)
}

// Post revalidates the path given in the query.
func (s *Service) Post(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing path parameter"})
	}

	var done []string
	if s.Revalidator != nil {
		done = s.Revalidator.Revalidate(path)
	}

	log.Info().Strs("paths", done).Msg("revalidated on request")

	return c.JSON(fiber.Map{"revalidated": true, "message": "Revalidated: " + path})
}
