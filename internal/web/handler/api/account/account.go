// Package account provides the JSON endpoints for admin sign in, password
// changes and bootstrapping the configured admin.
package account

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
	// LoginPath signs an admin in.
	LoginPath = handler.APIPath + "/auth/login"

	// ChangePasswordPath changes an admin password.
	ChangePasswordPath = handler.APIPath + "/auth/change-password"

	// SetupPath creates or resets the configured admin.
	SetupPath = handler.APIPath + "/auth/setup"
)

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of a change password call.
type ChangePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// User is the public view of an admin user.
type User struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Credentials are returned by the setup endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service is the account API handler.
type Service struct {
	handler.Service
	cfg         *config.Config
	authService *auth.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. The setup route exists only when enabled in the config.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.authService = auth.NewService(db)

	app.Post(LoginPath, s.Login)
	app.Post(ChangePasswordPath, s.ChangePassword)

	if cfg.Admin.AllowSetupEndpoint {
		log.Warn().Str("path", SetupPath).Msg("admin setup endpoint is enabled")
		app.Get(SetupPath, s.Setup)
	}
}

func fail(c *fiber.Ctx, status int, key, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, key: msg})
}

// Login checks the credentials and starts a session.
func (s *Service) Login(c *fiber.Ctx) error {
	req := new(LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "error", "Email and password are required")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "error", "Email and password are required")
	}

	user, err := s.authService.Authenticate(req.Email, req.Password)

	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return fail(c, fiber.StatusUnauthorized, "error", "User not found. Please check your email.")
	case errors.Is(err, auth.ErrInvalidPassword):
		return fail(c, fiber.StatusUnauthorized, "error", "Invalid password")
	case err != nil:
		log.Error().Err(err).Msg("failed to authenticate")

		return fail(c, fiber.StatusInternalServerError, "error", "An error occurred during login")
	}

	if err = session.Start(c, session.UserFromModel(user), s.cfg.Webserver.Session.ExpiryTime, !s.cfg.DevMode); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return fail(c, fiber.StatusInternalServerError, "error", "An error occurred during login")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": User{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

// ChangePassword replaces a password after checking the current one.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	req := new(ChangePasswordRequest)
	if err := c.BodyParser(req); err != nil || req.Email == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		return fail(c, fiber.StatusBadRequest, "message", "Email, current password, and new password are required")
	}

	err := s.authService.ChangePassword(req.Email, req.CurrentPassword, req.NewPassword)

	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "message", "User not found")
	case errors.Is(err, auth.ErrInvalidCurrentPassword):
		return fail(c, fiber.StatusBadRequest, "message", "Current password is incorrect")
	case errors.Is(err, auth.ErrPasswordTooShort):
		return fail(c, fiber.StatusBadRequest, "message", "New password must be at least 8 characters long")
	case err != nil:
		log.Error().Err(err).Msg("failed to change password")

		return fail(c, fiber.StatusInternalServerError, "message", "Failed to update password")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password updated successfully"})
}

// Setup creates the configured admin or resets its password.
func (s *Service) Setup(c *fiber.Ctx) error {
	res, err := s.authService.Bootstrap(s.cfg.Admin.Email, s.cfg.Admin.Name, s.cfg.Admin.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to set up admin user")

		return fail(c, fiber.StatusInternalServerError, "message", "Failed to set up admin user")
	}

	msg := "Admin user updated successfully"
	if res.Created {
		msg = "Admin user created successfully"
	}

	log.Warn().Str("email", res.User.Email).Bool("created", res.Created).Str("ip", c.IP()).
		Msg("admin user set up through the API")

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     msg,
		"credentials": Credentials{Email: res.User.Email, Password: res.Password},
	})
}
