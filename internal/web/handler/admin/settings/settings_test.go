package settings_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iauth "github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/db/controller/site"
	"github.com/jlsurveying/jls-web/internal/web/handler/admin/settings"
	"github.com/jlsurveying/jls-web/internal/web/handler/handlertest"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

func newEnv(t *testing.T) (*handlertest.Env, *handlertest.Recorder) {
	t.Helper()

	env := handlertest.New(t)
	rec := &handlertest.Recorder{}

	s := settings.Service{Revalidator: rec}
	s.Init(env.App, env.Cfg, env.DB)

	return env, rec
}

func settingsForm() url.Values {
	return url.Values{
		"site_name":     {"JL Surveying"},
		"site_url":      {"https://example.com"},
		"contact_email": {"office@example.com"},
		"primary_color": {"#112233"},
		"font":          {"Roboto"},
		"dark_mode":     {"true"},
	}
}

func TestGetShowsDefaults(t *testing.T) {
	env, _ := newEnv(t)

	resp, body := env.Get(t, settings.Path, env.SessionCookie(t))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, settings.TemplateName, body)

	_, m := env.Views.Last()
	assert.Equal(t, site.Defaults(), m["Settings"])
}

func TestPostSavesAndPurges(t *testing.T) {
	env, rec := newEnv(t)

	resp, body := env.PostForm(t, settings.Path, settingsForm(), env.SessionCookie(t))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, settings.MsgSaved)
	assert.Equal(t, 1, rec.Purges)

	got, err := site.Load(env.DB)
	require.NoError(t, err)
	assert.Equal(t, "JL Surveying", got.SiteName)
	assert.True(t, got.DarkMode)
	assert.False(t, got.Animations)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestPostValidation(t *testing.T) {
	env, rec := newEnv(t)

	form := settingsForm()
	form.Set("primary_color", "yellow")
	form.Set("contact_email", "nope")

	resp, body := env.PostForm(t, settings.Path, form, env.SessionCookie(t))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "PrimaryColor must be a hex color")
	assert.Contains(t, body, "ContactEmail must be a valid email address")
	assert.Zero(t, rec.Purges)
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		status int
		want   string
	}{
		{
			name: "success",
			form: url.Values{
				"current_password": {handlertest.AdminPassword},
				"new_password":     {"a-much-longer-one"},
				"confirm_password": {"a-much-longer-one"},
			},
			status: fiber.StatusOK,
			want:   settings.MsgPasswordChanged,
		},
		{
			name: "wrong current",
			form: url.Values{
				"current_password": {"not-it-at-all"},
				"new_password":     {"a-much-longer-one"},
				"confirm_password": {"a-much-longer-one"},
			},
			status: fiber.StatusBadRequest,
			want:   "Current password is incorrect",
		},
		{
			name: "too short",
			form: url.Values{
				"current_password": {handlertest.AdminPassword},
				"new_password":     {"short"},
				"confirm_password": {"short"},
			},
			status: fiber.StatusBadRequest,
			want:   "NewPassword must be at least 8 characters long",
		},
		{
			name: "mismatch",
			form: url.Values{
				"current_password": {handlertest.AdminPassword},
				"new_password":     {"a-much-longer-one"},
				"confirm_password": {"a-much-longer-two"},
			},
			status: fiber.StatusBadRequest,
			want:   "ConfirmPassword must match NewPassword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newEnv(t)

			resp, body := env.PostForm(t, settings.PasswordPath, tt.form, env.SessionCookie(t))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.want)

			_, err := iauth.NewService(env.DB).Authenticate(handlertest.AdminEmail, "a-much-longer-one")
			if tt.status == fiber.StatusOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, iauth.ErrInvalidPassword)
			}
		})
	}
}

func TestChangePasswordRenewsSession(t *testing.T) {
	env, _ := newEnv(t)

	old := env.SessionCookie(t)

	resp, body := env.PostForm(t, settings.PasswordPath, url.Values{
		"current_password": {handlertest.AdminPassword},
		"new_password":     {"a-much-longer-one"},
		"confirm_password": {"a-much-longer-one"},
	}, old)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, settings.MsgPasswordChanged)

	require.ErrorIs(t, new(session.Data).Read(old.Value), session.ErrNoSession)

	var renewed string

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			renewed = c.Value
		}
	}

	require.NotEmpty(t, renewed)
	require.NotEqual(t, old.Value, renewed)

	resp, _ = env.Get(t, settings.Path, &http.Cookie{Name: session.CookieName, Value: renewed})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.Get(t, settings.Path, old)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}
