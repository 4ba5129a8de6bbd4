// Package services renders the services page.
package services

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the path to the services page.
	Path = handler.RootPath + "services"

	// TemplateName is the name of the services template.
	TemplateName = "public/services"
)

// Service is the services page handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the services page handler.
var Handler = Service{}

// Init initializes the services page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
}

// Get handles the services page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Our Services", navigation.SectionServices, "list").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Services", Path, true)

	items, err := content.List[models.Service](s.db, content.Query{Order: content.OrderIDAsc})
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")

		return handler.ServerError(c, "Failed to load services")
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Services":   items,
	}, handler.PublicLayout)
}
