package login_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/handler/login"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

func newEnv(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)

	var s login.Service
	s.Init(env.App, env.Cfg, env.DB)

	return env
}

func TestGetRendersForm(t *testing.T) {
	env := newEnv(t)

	resp, body := env.Get(t, login.Path, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, login.TemplateName, body)
}

func TestPostSuccessSetsCookieAndRedirects(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.PostForm(t, login.Path, url.Values{
		"email":    {"ADMIN@jlsurveying.com"},
		"password": {handlertest.AdminPassword},
	}, nil)

	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get(fiber.HeaderLocation))

	setCookie := resp.Header.Get(fiber.HeaderSetCookie)
	assert.Contains(t, setCookie, session.CookieName+"=")
	assert.Contains(t, strings.ToLower(setCookie), "secure")
	assert.Contains(t, strings.ToLower(setCookie), "httponly")
}

func TestPostDevModeDisablesSecure(t *testing.T) {
	env := newEnv(t)
	env.Cfg.DevMode = true

	resp, _ := env.PostForm(t, login.Path, url.Values{
		"email":    {handlertest.AdminEmail},
		"password": {handlertest.AdminPassword},
	}, nil)

	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.NotContains(t, strings.ToLower(resp.Header.Get(fiber.HeaderSetCookie)), "secure")
}

func TestPostErrors(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		status int
		want   error
	}{
		{
			name:   "missing password",
			form:   url.Values{"email": {handlertest.AdminEmail}},
			status: fiber.StatusBadRequest,
			want:   login.ErrMissingCredentials,
		},
		{
			name:   "unknown user",
			form:   url.Values{"email": {"nobody@jlsurveying.com"}, "password": {"whatever1"}},
			status: fiber.StatusUnauthorized,
			want:   login.ErrInvalidCredentials,
		},
		{
			name:   "wrong password",
			form:   url.Values{"email": {handlertest.AdminEmail}, "password": {"wrong-password"}},
			status: fiber.StatusUnauthorized,
			want:   login.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)

			resp, body := env.PostForm(t, login.Path, tt.form, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.want.Error())
			assert.Empty(t, resp.Header.Get(fiber.HeaderSetCookie))
		})
	}
}
