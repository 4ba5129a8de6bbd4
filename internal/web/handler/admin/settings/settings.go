// Package settings edits the site settings and the signed in admin's password.
package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	iauth "github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/cache"
	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/controller/site"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/middleware/auth"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

const (
	// Path is the path of the settings page.
	Path = handler.AdminPath + "/settings"

	// PasswordPath receives the change password form.
	PasswordPath = Path + "/password"

	// TemplateName is the name of the settings template.
	TemplateName = "admin/settings"

	// MsgSaved is shown after the settings were stored.
	MsgSaved = "Settings saved successfully"

	// MsgPasswordChanged is shown after a password change.
	MsgPasswordChanged = "Password changed successfully"
)

// PasswordForm is the change password form.
type PasswordForm struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password"     validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Service is the settings handler.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *iauth.Service

	// Revalidator is purged when the settings change.
	Revalidator cache.Revalidator
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.db = db
	s.authService = iauth.NewService(db)

	app.Get(Path, auth.RequireAdmin, s.Get)
	app.Post(Path, auth.RequireAdmin, s.Post)
	app.Post(PasswordPath, auth.RequireAdmin, s.ChangePassword)
}

func (s *Service) render(c *fiber.Ctx, status int, settings site.Settings, data fiber.Map) error {
	data["Navigation"] = navigation.NewContext("Settings", navigation.SectionSettings, "settings").
		AddBreadcrumb("Dashboard", handler.AdminPath, false).
		AddBreadcrumb("Settings", Path, true)
	data["Settings"] = settings

	return c.Status(status).Render(TemplateName, data, handler.AdminLayout)
}

// Get renders the settings form.
func (s *Service) Get(c *fiber.Ctx) error {
	settings, err := site.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load site settings")

		return s.render(c, fiber.StatusInternalServerError, settings, fiber.Map{
			"Error": "Failed to load settings",
		})
	}

	return s.render(c, fiber.StatusOK, settings, fiber.Map{})
}

// Post stores the site settings and purges every cached page.
func (s *Service) Post(c *fiber.Ctx) error {
	var settings site.Settings
	if err := c.BodyParser(&settings); err != nil {
		log.Debug().Err(err).Msg("failed to parse settings form")

		return s.render(c, fiber.StatusBadRequest, site.Defaults(), fiber.Map{
			"Error": "Invalid form submission",
		})
	}

	if errs := handler.Validate(&settings); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, settings, fiber.Map{
			"Error": handler.Messages(errs),
		})
	}

	if err := site.Save(s.db, &settings); err != nil {
		log.Error().Err(err).Msg("failed to save site settings")

		return s.render(c, fiber.StatusInternalServerError, settings, fiber.Map{
			"Error": "Failed to save settings",
		})
	}

	if s.Revalidator != nil {
		s.Revalidator.PurgeAll()
	}

	log.Info().Msg("site settings updated")

	return s.render(c, fiber.StatusOK, settings, fiber.Map{"Success": MsgSaved})
}

// ChangePassword updates the password of the signed in admin.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	settings, err := site.Load(s.db)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load site settings")
	}

	user, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(Path)
	}

	form := new(PasswordForm)
	if err = c.BodyParser(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": "Invalid form submission"})
	}

	if errs := handler.Validate(form); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": handler.Messages(errs)})
	}

	err = s.authService.ChangePassword(user.Email, form.CurrentPassword, form.NewPassword)

	switch {
	case errors.Is(err, iauth.ErrInvalidCurrentPassword):
		return s.render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": "Current password is incorrect"})
	case errors.Is(err, iauth.ErrPasswordTooShort):
		return s.render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": err.Error()})
	case err != nil:
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to change password")

		return s.render(c, fiber.StatusInternalServerError, settings, fiber.Map{"Error": "Failed to change password"})
	}

	log.Info().Uint64("user_id", user.ID).Msg("admin password changed")

	// every session of the user is stale now, replace the one of this request
	if err = s.renewSession(c, user.Email); err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to renew session")
	}

	return s.render(c, fiber.StatusOK, settings, fiber.Map{"Success": MsgPasswordChanged})
}

func (s *Service) renewSession(c *fiber.Ctx, email string) error {
	fresh, err := s.authService.FindByEmail(email)
	if err != nil {
		return err
	}

	if err = session.End(c); err != nil {
		return err
	}

	return session.Start(c, session.UserFromModel(fresh), s.cfg.Webserver.Session.ExpiryTime, !s.cfg.DevMode)
}
