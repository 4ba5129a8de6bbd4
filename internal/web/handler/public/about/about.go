// Package about renders the about page with the team.
package about

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
	// Path is the path to the about page.
	Path = handler.RootPath + "about"

	// TemplateName is the name of the about template.
	TemplateName = "public/about"
)

// Service is the about handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the about handler.
var Handler = Service{}

// Init initializes the about handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
}

// Get handles the about page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("About Us", navigation.SectionAbout, "about").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("About", Path, true)

	team, err := content.List[models.TeamMember](s.db, content.Query{Order: content.OrderIDAsc})
	if err != nil {
		log.Error().Err(err).Msg("failed to list team members")

		return handler.ServerError(c, "Failed to load team")
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Team":       team,
	}, handler.PublicLayout)
}
