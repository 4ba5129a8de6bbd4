// Package site exposes the site settings to every rendered page.
package site

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/db/controller/site"
	"github.com/jlsurveying/jls-web/internal/web/handler"
)

// New returns a middleware storing the site settings in the locals.
// Load failures fall back to the defaults so pages keep rendering.
func New(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := site.Load(db)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load site settings, using defaults")
		}

		c.Locals(handler.LocalsSite, settings)

		return c.Next()
	}
}

// Settings returns the settings stored by the middleware, or the defaults.
func Settings(c *fiber.Ctx) site.Settings {
	if s, ok := c.Locals(handler.LocalsSite).(site.Settings); ok {
		return s
	}

	return site.Defaults()
}
