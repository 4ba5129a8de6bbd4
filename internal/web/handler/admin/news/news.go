// Package news manages news articles.
package news

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/admin/crud"
	public "github.com/jlsurveying/jls-web/internal/web/handler/public/news"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the base path for news management.
	Path = handler.AdminPath + "/news"

	// TemplateList is the template for listing articles.
	TemplateList = "admin/news/list"
	// TemplateForm is the template for creating/updating an article.
	TemplateForm = "admin/news/form"

	// DateLayout is the layout of the publish date input.
	DateLayout = "2006-01-02"
)

// ErrInvalidPublishDate is returned when the publish date does not parse.
var ErrInvalidPublishDate = errors.New("publish date must be a date like 2024-06-30")

// Form is the article form.
type Form struct {
	Title       string `form:"title"        validate:"required,max=255"`
	Description string `form:"description"  validate:"required"`
	Content     string `form:"content"`
	ImageURL    string `form:"image_url"    validate:"omitempty,url,max=1024"`
	Author      string `form:"author"       validate:"required,max=255"`
	PublishDate string `form:"publish_date" validate:"required"`
}

// Normalize trims the input.
func (f *Form) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Content = strings.TrimSpace(f.Content)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Author = strings.TrimSpace(f.Author)
	f.PublishDate = strings.TrimSpace(f.PublishDate)
}

func formOf(n *models.News) Form {
	if n == nil {
		return Form{PublishDate: time.Now().UTC().Format(DateLayout)}
	}

	return Form{
		Title:       n.Title,
		Description: n.Description,
		Content:     n.Content,
		ImageURL:    n.ImageURL,
		Author:      n.Author,
		PublishDate: n.PublishDate.UTC().Format(DateLayout),
	}
}

func apply(f *Form, n *models.News) error {
	published, err := time.Parse(DateLayout, f.PublishDate)
	if err != nil {
		return ErrInvalidPublishDate
	}

	n.Title = f.Title
	n.Description = f.Description
	n.Content = f.Content
	n.ImageURL = f.ImageURL
	n.Author = f.Author
	n.PublishDate = published

	return nil
}

// Service is the news management handler.
type Service struct {
	handler.Service
	crud.Resource[models.News, Form]
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Revalidator is kept when set before.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.Resource = crud.Resource[models.News, Form]{
		Singular:     "Article",
		Plural:       "News",
		Path:         Path,
		Section:      navigation.SectionNews,
		ListTemplate: TemplateList,
		FormTemplate: TemplateForm,
		FormOf:       formOf,
		Apply:        apply,
		Paths: func(n *models.News) []string {
			return []string{public.Path, fmt.Sprintf("%s/%d", public.Path, n.ID)}
		},
		DB:          db,
		Revalidator: s.Revalidator,
	}

	s.Register(app)
}
