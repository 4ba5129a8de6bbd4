package team_test

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler/admin/team"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
)

func TestCreateAndDelete(t *testing.T) {
	env := handlertest.New(t)
	rec := &handlertest.Recorder{}

	s := team.Service{}
	s.Revalidator = rec
	s.Init(env.App, env.Cfg, env.DB)

	cookie := env.SessionCookie(t)

	resp, _ := env.PostForm(t, team.Path, url.Values{
		"name":     {"Jordan Lee"},
		"position": {"Principal Surveyor"},
		"bio":      {"Twenty years in the field."},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, []string{"/about"}, rec.Last())

	members, err := content.List[models.TeamMember](env.DB, content.Query{})
	require.NoError(t, err)
	require.Len(t, members, 1)

	resp, _ = env.PostForm(t, fmt.Sprintf("%s/%d/delete", team.Path, members[0].ID), nil, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Len(t, rec.Paths, 2)

	n, err := content.Count[models.TeamMember](env.DB, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteUnknownRedirects(t *testing.T) {
	env := handlertest.New(t)
	rec := &handlertest.Recorder{}

	s := team.Service{}
	s.Revalidator = rec
	s.Init(env.App, env.Cfg, env.DB)

	resp, _ := env.PostForm(t, team.Path+"/77/delete", nil, env.SessionCookie(t))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, team.Path, resp.Header.Get(fiber.HeaderLocation))
	assert.Empty(t, rec.Paths)
}
