// Package home renders the landing page.
package home

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
	// Path is the path to the home page.
	Path = handler.RootPath

	// TemplateName is the name of the home template.
	TemplateName = "public/home"

	// Number of records of each kind shown on the home page.
	servicesShown = 6
	projectsShown = 3
	newsShown     = 3
)

// Data is rendered by the home template.
type Data struct {
	Services []models.Service
	Projects []models.Project
	News     []models.News
}

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
}

// Load queries the records shown on the home page.
func (s *Service) Load() (Data, error) {
	var (
		data Data
		err  error
	)

	if data.Services, err = content.List[models.Service](s.db, content.Query{Limit: servicesShown}); err != nil {
		return data, err
	}

	if data.Projects, err = content.List[models.Project](s.db, content.Query{
		Order: content.OrderNewestFirst,
		Limit: projectsShown,
	}); err != nil {
		return data, err
	}

	if data.News, err = content.List[models.News](s.db, content.Query{
		Order: content.OrderPublishedFirst,
		Limit: newsShown,
	}); err != nil {
		return data, err
	}

	return data, nil
}

// Get handles the home page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Home", navigation.SectionHome, "home")

	data, err := s.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load home page content")

		return handler.ServerError(c, "Failed to load page content")
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data":       data,
	}, handler.PublicLayout)
}
