// Package dashboard provides the admin overview page.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/middleware/auth"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.AdminPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"

	recentLimit = 3
)

// Stats holds the record counts shown in the summary cards.
type Stats struct {
	Projects       int64
	Services       int64
	News           int64
	Messages       int64
	UnreadMessages int64
}

// Data represents the complete dashboard data.
type Data struct {
	Stats          Stats
	RecentProjects []models.Project
	RecentNews     []models.News
	RecentMessages []models.Message
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, auth.RequireAdmin, s.Get)
}

func (s *Service) stats() (Stats, error) {
	var (
		st  Stats
		err error
	)

	if st.Projects, err = content.Count[models.Project](s.db, nil); err != nil {
		return st, err
	}

	if st.Services, err = content.Count[models.Service](s.db, nil); err != nil {
		return st, err
	}

	if st.News, err = content.Count[models.News](s.db, nil); err != nil {
		return st, err
	}

	if st.Messages, err = content.Count[models.Message](s.db, nil); err != nil {
		return st, err
	}

	st.UnreadMessages, err = content.Count[models.Message](s.db, map[string]any{"read": false})

	return st, err
}

// Load gathers the counts and the most recent records.
func (s *Service) Load() (Data, error) {
	var (
		data Data
		err  error
	)

	if data.Stats, err = s.stats(); err != nil {
		return data, err
	}

	recent := content.Query{Order: content.OrderNewestFirst, Limit: recentLimit}

	if data.RecentProjects, err = content.List[models.Project](s.db, recent); err != nil {
		return data, err
	}

	if data.RecentNews, err = content.List[models.News](s.db, recent); err != nil {
		return data, err
	}

	data.RecentMessages, err = content.List[models.Message](s.db, recent)

	return data, err
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", navigation.SectionDashboard, "dashboard").
		AddBreadcrumb("Dashboard", Path, true)

	data, err := s.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard data")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Navigation": nav,
			"Error":      "Failed to load dashboard data",
		}, handler.AdminLayout)
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data":       data,
	}, handler.AdminLayout)
}
