package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	iauth "github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/login"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

// ErrNotInitialized is returned for every session until Init was called.
var ErrNotInitialized = errors.New("auth middleware is not initialized")

var users *iauth.Service //nolint:gochecknoglobals

// Init sets the database the sessions are verified against.
func Init(db *gorm.DB) {
	if db == nil {
		panic("db is nil")
	}

	users = iauth.NewService(db)
}

// current returns the session of the request if its admin still exists and
// did not change the password since sign in. Stale sessions are removed.
func current(c *fiber.Ctx) (*session.Data, error) {
	sessData, err := session.Current(c)
	if err != nil {
		return nil, err
	}

	if users == nil {
		log.Error().Err(ErrNotInitialized).Msg("rejecting session")

		return nil, ErrNotInitialized
	}

	if _, err = users.VerifySession(sessData.User.ID, sessData.User.Stamp); err != nil {
		if errors.Is(err, iauth.ErrUserNotFound) || errors.Is(err, iauth.ErrSessionRevoked) {
			log.Info().Uint64("user_id", sessData.User.ID).Err(err).Msg("ending stale session")

			if endErr := session.End(c); endErr != nil {
				log.Error().Err(endErr).Msg("failed to delete session")
			}
		}

		return nil, err
	}

	return sessData, nil
}

// RequireAdmin guards the dashboard pages.
// Requests without a valid session are redirected to the login page;
// signed in users visiting the login page are sent to the dashboard.
func RequireAdmin(c *fiber.Ctx) error {
	isLoginPage := IsLoginPage(c)

	sessData, err := current(c)
	if err != nil {
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(login.Path)
	}

	if isLoginPage && c.Method() == fiber.MethodGet {
		return c.Redirect(handler.AdminPath)
	}

	c.Locals(handler.LocalsCurrentUser, sessData.User)

	return c.Next()
}

// RequireAdminAPI guards JSON routes and answers 401 without a valid session.
func RequireAdminAPI(c *fiber.Ctx) error {
	sessData, err := current(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	c.Locals(handler.LocalsCurrentUser, sessData.User)

	return c.Next()
}

// CurrentUser returns the admin stored by the middleware.
func CurrentUser(c *fiber.Ctx) (session.User, bool) {
	u, ok := c.Locals(handler.LocalsCurrentUser).(session.User)

	return u, ok && u.ID > 0
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), login.Path)
}
