package about_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/about"
)

func TestGet(t *testing.T) {
	env := handlertest.New(t)

	var s about.Service
	s.Init(env.App, env.Cfg, env.DB)

	require.NoError(t, content.Create(env.DB, &models.TeamMember{
		Name:     "Jordan Lee",
		Position: "Principal Surveyor",
		Bio:      "Twenty years in the field.",
	}))

	resp, body := env.Get(t, about.Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, about.TemplateName, body)

	_, m := env.Views.Last()
	team, ok := m["Team"].([]models.TeamMember)
	require.True(t, ok)
	require.Len(t, team, 1)
	assert.Equal(t, "Jordan Lee", team[0].Name)
}
