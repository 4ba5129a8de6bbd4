package news_test

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
	"github.com/jlsurveying/jls-web/internal/web/handler/public/news"
)

func TestListAndDetail(t *testing.T) {
	env := handlertest.New(t)

	var s news.Service
	s.Init(env.App, env.Cfg, env.DB)

	older := models.News{
		Title:       "Spring update",
		Description: "desc",
		Author:      "JL",
		PublishDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := models.News{
		Title:       "Summer update",
		Description: "desc",
		Author:      "JL",
		PublishDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	// Inserted newest first so the order comes from publish_date, not id.
	require.NoError(t, content.Create(env.DB, &newer))
	require.NoError(t, content.Create(env.DB, &older))

	resp, body := env.Get(t, news.Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, news.ListTemplate, body)

	_, m := env.Views.Last()
	items, ok := m["News"].([]models.News)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "Summer update", items[0].Title)

	resp, body = env.Get(t, fmt.Sprintf("%s/%d", news.Path, older.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, news.DetailTemplate, body)

	resp, body = env.Get(t, news.Path+"/12345", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, handler.NotFoundTemplate, body)
}
