// Package team manages the team members shown on the about page.
package team

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/admin/crud"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/about"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the base path for team management.
	Path = handler.AdminPath + "/team"

	// TemplateList is the template for listing team members.
	TemplateList = "admin/team/list"
	// TemplateForm is the template for creating/updating a team member.
	TemplateForm = "admin/team/form"
)

// Form is the team member form.
type Form struct {
	Name     string `form:"name"      validate:"required,max=255"`
	Position string `form:"position"  validate:"required,max=255"`
	Bio      string `form:"bio"       validate:"required"`
	ImageURL string `form:"image_url" validate:"omitempty,url,max=1024"`
}

// Normalize trims the input.
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Position = strings.TrimSpace(f.Position)
	f.Bio = strings.TrimSpace(f.Bio)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}

func formOf(m *models.TeamMember) Form {
	if m == nil {
		return Form{}
	}

	return Form{Name: m.Name, Position: m.Position, Bio: m.Bio, ImageURL: m.ImageURL}
}

func apply(f *Form, m *models.TeamMember) error {
	m.Name = f.Name
	m.Position = f.Position
	m.Bio = f.Bio
	m.ImageURL = f.ImageURL

	return nil
}

// Service is the team management handler.
type Service struct {
	handler.Service
	crud.Resource[models.TeamMember, Form]
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Revalidator is kept when set before.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.Resource = crud.Resource[models.TeamMember, Form]{
		Singular:     "Team member",
		Plural:       "Team",
		Path:         Path,
		Section:      navigation.SectionTeam,
		ListTemplate: TemplateList,
		FormTemplate: TemplateForm,
		FormOf:       formOf,
		Apply:        apply,
		Paths: func(*models.TeamMember) []string {
			return []string{about.Path}
		},
		DB:          db,
		Revalidator: s.Revalidator,
	}

	s.Register(app)
}
