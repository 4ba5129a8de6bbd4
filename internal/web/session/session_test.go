package session_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/db/testutil"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

func newStorage(t *testing.T) *session.GormStorage {
	t.Helper()

	s := session.NewGormStorage(testutil.NewDB(t), time.Hour)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestGenerateSessionID(t *testing.T) {
	a, err := session.GenerateSessionID()
	require.NoError(t, err)

	b, err := session.GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestGormStorage(t *testing.T) {
	s := newStorage(t)

	v, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("k", []byte("v1"), time.Hour))
	require.NoError(t, s.Set("k", []byte("v2"), time.Hour))

	v, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)

	require.NoError(t, s.Delete("k"))
	v, err = s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Reset())
	v, err = s.Get("a")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStartCurrentEnd(t *testing.T) {
	session.Init(newStorage(t), time.Hour)

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		return session.Start(c, session.User{ID: 7, Email: "admin@jlsurveying.com", Role: "admin"}, time.Hour, true)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		data, err := session.Current(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		return c.SendString(data.User.Email)
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		return session.End(c)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil), -1)
	require.NoError(t, err)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/logout", nil)
	req.AddCookie(cookies[0])
	_, err = app.Test(req, -1)
	require.NoError(t, err)

	req = httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
