package services_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/services"
)

func TestGet(t *testing.T) {
	env := handlertest.New(t)

	var s services.Service
	s.Init(env.App, env.Cfg, env.DB)

	for _, title := range []string{"Boundary Survey", "Topographic Survey"} {
		require.NoError(t, content.Create(env.DB, &models.Service{
			Title:       title,
			Description: "desc",
			Features:    []string{"Fast", "Accurate"},
		}))
	}

	resp, body := env.Get(t, services.Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, services.TemplateName, body)

	_, m := env.Views.Last()
	items, ok := m["Services"].([]models.Service)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "Boundary Survey", items[0].Title)
	assert.Equal(t, []string{"Fast", "Accurate"}, items[0].Features)
	assert.Equal(t, models.DefaultServiceIcon, items[0].Icon)
}
