// Package projects manages the portfolio.
package projects

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/admin/crud"
	public "github.com/jlsurveying/jls-web/internal/web/handler/public/projects"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the base path for project management.
	Path = handler.AdminPath + "/projects"

	// TemplateList is the template for listing projects.
	TemplateList = "admin/projects/list"
	// TemplateForm is the template for creating/updating a project.
	TemplateForm = "admin/projects/form"
)

// ErrUnknownCategory is returned for a category outside models.ProjectCategories.
var ErrUnknownCategory = errors.New("category must be one of: " + strings.Join(models.ProjectCategories, ", "))

// Form is the project form.
type Form struct {
	Title          string `form:"title"           validate:"required,max=255"`
	Description    string `form:"description"     validate:"required"`
	Details        string `form:"details"`
	ImageURL       string `form:"image_url"       validate:"omitempty,url,max=1024"`
	Location       string `form:"location"        validate:"required,max=255"`
	CompletionDate string `form:"completion_date" validate:"required,max=100"`
	Category       string `form:"category"        validate:"required"`
}

// Normalize trims the input.
func (f *Form) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Details = strings.TrimSpace(f.Details)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Location = strings.TrimSpace(f.Location)
	f.CompletionDate = strings.TrimSpace(f.CompletionDate)
	f.Category = strings.TrimSpace(f.Category)
}

func formOf(p *models.Project) Form {
	if p == nil {
		return Form{Category: models.CategoryCommercial}
	}

	return Form{
		Title:          p.Title,
		Description:    p.Description,
		Details:        p.Details,
		ImageURL:       p.ImageURL,
		Location:       p.Location,
		CompletionDate: p.CompletionDate,
		Category:       p.Category,
	}
}

func apply(f *Form, p *models.Project) error {
	if !lo.Contains(models.ProjectCategories, f.Category) {
		return ErrUnknownCategory
	}

	p.Title = f.Title
	p.Description = f.Description
	p.Details = f.Details
	p.ImageURL = f.ImageURL
	p.Location = f.Location
	p.CompletionDate = f.CompletionDate
	p.Category = f.Category

	return nil
}

// Service is the project management handler.
type Service struct {
	handler.Service
	crud.Resource[models.Project, Form]
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Revalidator is kept when set before.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.Resource = crud.Resource[models.Project, Form]{
		Singular:     "Project",
		Plural:       "Projects",
		Path:         Path,
		Section:      navigation.SectionProjects,
		ListTemplate: TemplateList,
		FormTemplate: TemplateForm,
		FormOf:       formOf,
		Apply:        apply,
		Paths: func(p *models.Project) []string {
			return []string{public.Path, fmt.Sprintf("%s/%d", public.Path, p.ID)}
		},
		FormData:    fiber.Map{"Categories": models.ProjectCategories},
		DB:          db,
		Revalidator: s.Revalidator,
	}

	s.Register(app)
}
