package home_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/home"
)

func TestGet(t *testing.T) {
	env := handlertest.New(t)

	var s home.Service
	s.Init(env.App, env.Cfg, env.DB)

	for i := 1; i <= 7; i++ {
		require.NoError(t, content.Create(env.DB, &models.Service{
			Title:       fmt.Sprintf("Service %d", i),
			Description: "desc",
		}))
	}

	for i := 1; i <= 4; i++ {
		require.NoError(t, content.Create(env.DB, &models.Project{
			Title:          fmt.Sprintf("Project %d", i),
			Description:    "desc",
			Location:       "Springfield",
			CompletionDate: "2024",
			Category:       models.CategoryCommercial,
		}))
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, day := range []int{3, 1, 4, 2} {
		require.NoError(t, content.Create(env.DB, &models.News{
			Title:       fmt.Sprintf("News %d", day),
			Description: "desc",
			Author:      "JL",
			PublishDate: base.AddDate(0, 0, day),
		}))
	}

	resp, body := env.Get(t, home.Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, home.TemplateName, body)

	_, m := env.Views.Last()
	data, ok := m["Data"].(home.Data)
	require.True(t, ok)

	require.Len(t, data.Services, 6)
	assert.Equal(t, "Service 1", data.Services[0].Title)

	require.Len(t, data.Projects, 3)
	assert.Equal(t, "Project 4", data.Projects[0].Title)

	require.Len(t, data.News, 3)
	assert.Equal(t, []string{"News 4", "News 3", "News 2"},
		[]string{data.News[0].Title, data.News[1].Title, data.News[2].Title})
}

func TestGetEmpty(t *testing.T) {
	env := handlertest.New(t)

	var s home.Service
	s.Init(env.App, env.Cfg, env.DB)

	resp, _ := env.Get(t, handler.RootPath, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, m := env.Views.Last()
	data, ok := m["Data"].(home.Data)
	require.True(t, ok)
	assert.Empty(t, data.Services)
	assert.Empty(t, data.Projects)
	assert.Empty(t, data.News)
}
