// Package login renders the dashboard sign in form and starts admin sessions.
package login

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.AdminPath + "/login"

	// TemplateName is the name of the login template.
	TemplateName = "admin/login"
)

var (
	// ErrMissingCredentials is shown when email or password is blank.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials is shown for unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInternalServerError is shown for unexpected failures.
	ErrInternalServerError = errors.New("internal server error")
)

// Form is the login form.
type Form struct {
	Email    string `form:"email"    json:"email"`
	Password string `form:"password" json:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	authService *auth.Service
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.authService = auth.NewService(db)

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

func (s *Service) render(c *fiber.Ctx, status int, email string, err error) error {
	data := fiber.Map{"Email": email}
	if err != nil {
		data["error"] = err.Error()
	}

	return c.Status(status).Render(TemplateName, data)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "", nil)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("failed to parse login form")

		return s.render(c, fiber.StatusBadRequest, "", ErrMissingCredentials)
	}

	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		return s.render(c, fiber.StatusBadRequest, form.Email, ErrMissingCredentials)
	}

	user, err := s.authService.Authenticate(form.Email, form.Password)

	switch {
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		log.Info().Str("email", form.Email).Str("ip", c.IP()).Msg("failed admin login")

		return s.render(c, fiber.StatusUnauthorized, form.Email, ErrInvalidCredentials)
	case err != nil:
		log.Error().Err(err).Msg("failed to authenticate")

		return s.render(c, fiber.StatusInternalServerError, form.Email, ErrInternalServerError)
	}

	if err = session.Start(c, session.UserFromModel(user), s.cfg.Webserver.Session.ExpiryTime, !s.cfg.DevMode); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.render(c, fiber.StatusInternalServerError, form.Email, ErrInternalServerError)
	}

	log.Info().Uint64("user_id", user.ID).Msg("admin signed in")

	return c.Redirect(handler.AdminPath)
}
