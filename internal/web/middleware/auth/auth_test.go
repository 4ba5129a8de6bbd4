package auth_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iauth "github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/handler/login"
	"github.com/jlsurveying/jls-web/internal/web/middleware/auth"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

func newEnv(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)

	env.App.Use(handler.AdminPath, auth.RequireAdmin)
	env.App.Get(login.Path, func(c *fiber.Ctx) error { return c.SendString("login") })
	env.App.Get(handler.AdminPath+"/whoami", func(c *fiber.Ctx) error {
		u, ok := auth.CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}

		return c.SendString(u.Email)
	})
	env.App.Get(handler.APIPath+"/private", auth.RequireAdminAPI, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return env
}

func TestRequireAdmin(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.Get(t, handler.AdminPath+"/whoami", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get(fiber.HeaderLocation))

	resp, body := env.Get(t, login.Path, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "login", body)

	cookie := env.SessionCookie(t)

	resp, body = env.Get(t, handler.AdminPath+"/whoami", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, handlertest.AdminEmail, body)

	resp, _ = env.Get(t, login.Path, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get(fiber.HeaderLocation))
}

func TestRequireAdminUnknownSession(t *testing.T) {
	env := newEnv(t)

	cookie := env.SessionCookie(t)
	cookie.Value = "0000"

	resp, _ := env.Get(t, handler.AdminPath+"/whoami", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestRequireAdminAPI(t *testing.T) {
	env := newEnv(t)

	resp, body := env.Get(t, handler.APIPath+"/private", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, body)

	resp, body = env.Get(t, handler.APIPath+"/private", env.SessionCookie(t))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestRequireAdminEndsSessionAfterPasswordChange(t *testing.T) {
	env := newEnv(t)

	cookie := env.SessionCookie(t)

	resp, _ := env.Get(t, handler.AdminPath+"/whoami", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, iauth.NewService(env.DB).
		ChangePassword(handlertest.AdminEmail, handlertest.AdminPassword, "another-password"))

	resp, _ = env.Get(t, handler.AdminPath+"/whoami", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get(fiber.HeaderLocation))

	resp, body := env.Get(t, handler.APIPath+"/private", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, body)

	// the stale session was removed from the store
	require.ErrorIs(t, new(session.Data).Read(cookie.Value), session.ErrNoSession)

	resp, _ = env.Get(t, handler.AdminPath+"/whoami", env.SessionCookie(t))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminAPIDeletedUser(t *testing.T) {
	env := newEnv(t)

	cookie := env.SessionCookie(t)

	require.NoError(t, env.DB.Where("email = ?", handlertest.AdminEmail).Delete(&models.AdminUser{}).Error)

	resp, _ := env.Get(t, handler.APIPath+"/private", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.Get(t, handler.AdminPath+"/whoami", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}
