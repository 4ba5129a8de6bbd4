// Package contact renders the contact page and stores submitted messages.
package contact

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/controller/site"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the path to the contact page.
	Path = handler.RootPath + "contact"

	// TemplateName is the name of the contact template.
	TemplateName = "public/contact"

	// MsgSent is shown after a message was stored.
	MsgSent = "Thank you for your message. We'll get back to you soon!"

	// MsgFailed is shown when the message could not be stored.
	MsgFailed = "There was an error submitting your message. Please try again."
)

// Form is the contact form.
type Form struct {
	Name    string `form:"name"    validate:"required,max=255"`
	Email   string `form:"email"   validate:"required,email,max=255"`
	Phone   string `form:"phone"   validate:"max=100"`
	Message string `form:"message" validate:"required,max=5000"`
}

func (f *Form) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
}

// Service is the contact handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the contact handler.
var Handler = Service{}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

func (s *Service) render(c *fiber.Ctx, status int, form *Form, data fiber.Map) error {
	settings, err := site.Load(s.db)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load site settings, using defaults")
	}

	nav := navigation.NewContext("Contact Us", navigation.SectionContact, "contact").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Contact", Path, true)

	data["Navigation"] = nav
	data["Contact"] = settings
	data["Form"] = form

	return c.Status(status).Render(TemplateName, data, handler.PublicLayout)
}

// Get handles the contact page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, &Form{}, fiber.Map{})
}

// Post handles the contact form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("failed to parse contact form")

		return s.render(c, fiber.StatusBadRequest, &Form{}, fiber.Map{"Error": MsgFailed})
	}

	form.trim()

	if errs := handler.Validate(form); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, form, fiber.Map{"Error": handler.Messages(errs)})
	}

	msg := models.Message{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	}

	if err := content.Create(s.db, &msg); err != nil {
		log.Error().Err(err).Msg("failed to store contact message")

		return s.render(c, fiber.StatusInternalServerError, form, fiber.Map{"Error": MsgFailed})
	}

	log.Info().Uint64("message_id", msg.ID).Msg("contact message received")

	return s.render(c, fiber.StatusOK, &Form{}, fiber.Map{"Success": MsgSent})
}
