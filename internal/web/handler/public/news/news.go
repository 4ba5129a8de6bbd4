// Package news renders the article list and article pages.
package news

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
	// Path is the path to the news page.
	Path = handler.RootPath + "news"

	// ListTemplate is the name of the news list template.
	ListTemplate = "public/news"

	// DetailTemplate is the name of the article template.
	DetailTemplate = "public/article"
)

// Service is the news handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the news handler.
var Handler = Service{}

// Init initializes the news handler.
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

// List handles the news page rendering, latest publish date first.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("Latest News", navigation.SectionNews, "list").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("News", Path, true)

	items, err := content.List[models.News](s.db, content.Query{Order: content.OrderPublishedFirst})
	if err != nil {
		log.Error().Err(err).Msg("failed to list news")

		return handler.ServerError(c, "Failed to load news")
	}

	return c.Render(ListTemplate, fiber.Map{
		"Navigation": nav,
		"News":       items,
	}, handler.PublicLayout)
}

// Detail handles a single article page.
func (s *Service) Detail(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c.Params("id"))
	if !ok {
		return handler.NotFound(c)
	}

	article, err := content.Get[models.News](s.db, id)
	if errors.Is(err, content.ErrNotFound) {
		return handler.NotFound(c)
	}

	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to load article")

		return handler.ServerError(c, "Failed to load article")
	}

	nav := navigation.NewContext(article.Title, navigation.SectionNews, "detail").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("News", Path, false).
		AddBreadcrumb(article.Title, c.Path(), true).
		WithDescription(article.Description)

	return c.Render(DetailTemplate, fiber.Map{
		"Navigation": nav,
		"Article":    article,
	}, handler.PublicLayout)
}
