// Package projects renders the portfolio list and project detail pages.
package projects

import (
	"errors"

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
	// Path is the path to the projects page.
	Path = handler.RootPath + "projects"

	// ListTemplate is the name of the projects list template.
	ListTemplate = "public/projects"

	// DetailTemplate is the name of the project detail template.
	DetailTemplate = "public/project"
)

// Service is the projects handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the projects handler.
var Handler = Service{}

// Init initializes the projects handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.List)
	app.Get(Path+"/:id", s.Detail)
}

// List handles the projects page rendering, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("Our Projects", navigation.SectionProjects, "list").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Projects", Path, true)

	items, err := content.List[models.Project](s.db, content.Query{Order: content.OrderNewestFirst})
	if err != nil {
		log.Error().Err(err).Msg("failed to list projects")

		return handler.ServerError(c, "Failed to load projects")
	}

	return c.Render(ListTemplate, fiber.Map{
		"Navigation": nav,
		"Projects":   items,
		"Categories": models.ProjectCategories,
	}, handler.PublicLayout)
}

// Detail handles a single project page.
func (s *Service) Detail(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c.Params("id"))
	if !ok {
		return handler.NotFound(c)
	}

	project, err := content.Get[models.Project](s.db, id)
	if errors.Is(err, content.ErrNotFound) {
		return handler.NotFound(c)
	}

	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to load project")

		return handler.ServerError(c, "Failed to load project")
	}

	nav := navigation.NewContext(project.Title, navigation.SectionProjects, "detail").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Projects", Path, false).
		AddBreadcrumb(project.Title, c.Path(), true).
		WithDescription(project.Description)

	return c.Render(DetailTemplate, fiber.Map{
		"Navigation": nav,
		"Project":    project,
	}, handler.PublicLayout)
}
