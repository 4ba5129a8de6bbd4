// Package services manages the services offered on the public site.
package services

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/admin/crud"
	public "github.com/jlsurveying/jls-web/internal/web/handler/public/services"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the base path for service management.
	Path = handler.AdminPath + "/services"

	// TemplateList is the template for listing services.
	TemplateList = "admin/services/list"
	// TemplateForm is the template for creating/updating a service.
	TemplateForm = "admin/services/form"
)

// Form is the service form. Features are entered comma separated.
type Form struct {
	Title       string `form:"title"       validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	ImageURL    string `form:"image_url"   validate:"omitempty,url,max=1024"`
	Features    string `form:"features"`
	Icon        string `form:"icon"        validate:"max=100"`
}

// Normalize trims the input.
func (f *Form) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Icon = strings.TrimSpace(f.Icon)
}

func formOf(s *models.Service) Form {
	if s == nil {
		return Form{Icon: models.DefaultServiceIcon}
	}

	return Form{
		Title:       s.Title,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		Features:    content.JoinFeatures(s.Features),
		Icon:        s.Icon,
	}
}

func apply(f *Form, s *models.Service) error {
	s.Title = f.Title
	s.Description = f.Description
	s.ImageURL = f.ImageURL
	s.Features = content.ParseFeatures(f.Features)

	s.Icon = f.Icon
	if s.Icon == "" {
		s.Icon = models.DefaultServiceIcon
	}

	return nil
}

// Service is the service management handler.
type Service struct {
	handler.Service
	crud.Resource[models.Service, Form]
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Revalidator is kept when set before.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.Resource = crud.Resource[models.Service, Form]{
		Singular:     "Service",
		Plural:       "Services",
		Path:         Path,
		Section:      navigation.SectionServices,
		ListTemplate: TemplateList,
		FormTemplate: TemplateForm,
		FormOf:       formOf,
		Apply:        apply,
		Paths: func(*models.Service) []string {
			return []string{public.Path}
		},
		DB:          db,
		Revalidator: s.Revalidator,
	}

	s.Register(app)
}
