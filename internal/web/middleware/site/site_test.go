package site_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbsite "github.com/jlsurveying/jls-web/internal/db/controller/site"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/middleware/site"
)

func TestNew(t *testing.T) {
	env := handlertest.New(t)

	env.App.Use(site.New(env.DB))
	env.App.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(site.Settings(c).SiteName)
	})

	_, body := env.Get(t, "/", nil)
	assert.Equal(t, dbsite.Defaults().SiteName, body)

	s := dbsite.Defaults()
	s.SiteName = "JL Surveying East"
	require.NoError(t, dbsite.Save(env.DB, &s))

	_, body = env.Get(t, "/", nil)
	assert.Equal(t, "JL Surveying East", body)
}

func TestSettingsWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(site.Settings(c).SiteName)
	})

	env := &handlertest.Env{App: app}
	_, body := env.Get(t, "/", nil)
	assert.Equal(t, dbsite.Defaults().SiteName, body)
}
