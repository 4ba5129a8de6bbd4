package dashboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler/dashboard"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/handler/login"
)

func TestGet(t *testing.T) {
	env := handlertest.New(t)

	var s dashboard.Service
	s.Init(env.App, env.Cfg, env.DB)

	for i := 1; i <= 4; i++ {
		require.NoError(t, content.Create(env.DB, &models.Message{
			Name:    fmt.Sprintf("Sender %d", i),
			Email:   "sender@example.com",
			Message: "hello",
		}))
		require.NoError(t, content.Create(env.DB, &models.News{
			Title: fmt.Sprintf("News %d", i), Description: "d", Author: "JL", PublishDate: time.Now(),
		}))
	}

	require.NoError(t, content.Create(env.DB, &models.Service{Title: "Survey", Description: "d"}))
	require.NoError(t, content.SetRead(env.DB, 1, true))

	resp, body := env.Get(t, dashboard.Path, env.SessionCookie(t))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, dashboard.TemplateName, body)

	_, m := env.Views.Last()
	data, ok := m["Data"].(dashboard.Data)
	require.True(t, ok)

	assert.Equal(t, dashboard.Stats{Services: 1, News: 4, Messages: 4, UnreadMessages: 3}, data.Stats)
	require.Len(t, data.RecentMessages, 3)
	assert.Equal(t, "Sender 4", data.RecentMessages[0].Name)
	assert.Len(t, data.RecentNews, 3)
	assert.Empty(t, data.RecentProjects)
}

func TestGetRequiresSession(t *testing.T) {
	env := handlertest.New(t)

	var s dashboard.Service
	s.Init(env.App, env.Cfg, env.DB)

	resp, _ := env.Get(t, dashboard.Path, nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get(fiber.HeaderLocation))
}
