package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/db/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	s := NewService(testutil.NewDB(t))
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return s
}

func TestBootstrapCreatesAndResets(t *testing.T) {
	s := newTestService(t)

	res, err := s.Bootstrap("Admin@JLSurveying.com ", "Admin User", "first-password")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.Generated)
	assert.Equal(t, "admin@jlsurveying.com", res.User.Email)
	assert.Equal(t, models.RoleAdmin, res.User.Role)

	res, err = s.Bootstrap("admin@jlsurveying.com", "", "second-password")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "Admin User", res.User.Name)

	_, err = s.Authenticate("admin@jlsurveying.com", "first-password")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = s.Authenticate("admin@jlsurveying.com", "second-password")
	require.NoError(t, err)

	_, err = s.Bootstrap("  ", "x", "y")
	require.ErrorIs(t, err, ErrEmailEmpty)
}

func TestBootstrapGeneratesPassword(t *testing.T) {
	s := newTestService(t)

	res, err := s.Bootstrap("admin@jlsurveying.com", "Admin", "")
	require.NoError(t, err)
	assert.True(t, res.Generated)
	assert.Len(t, res.Password, generatedPasswordLength)

	_, err = s.Authenticate("admin@jlsurveying.com", res.Password)
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	s := newTestService(t)

	_, err := s.Bootstrap("admin@jlsurveying.com", "Admin", "admin123!")
	require.NoError(t, err)

	_, err = s.Authenticate("nobody@jlsurveying.com", "admin123!")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Authenticate("admin@jlsurveying.com", "nope")
	require.ErrorIs(t, err, ErrInvalidPassword)

	user, err := s.Authenticate("ADMIN@jlsurveying.com", "admin123!")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)

	stored, err := s.FindByEmail("admin@jlsurveying.com")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.True(t, stored.LastLogin.Equal(s.now()))
}

func TestAuthenticateRehashesBcrypt(t *testing.T) {
	s := newTestService(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, s.db.Create(&models.AdminUser{
		Email:        "old@jlsurveying.com",
		PasswordHash: string(legacy),
		Role:         models.RoleAdmin,
	}).Error)

	user, err := s.Authenticate("old@jlsurveying.com", "legacy-pass")
	require.NoError(t, err)

	stored, err := s.FindByEmail("old@jlsurveying.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$argon2id$"))
	assert.Equal(t, stored.PasswordStamp(), user.PasswordStamp())

	_, err = s.Authenticate("old@jlsurveying.com", "legacy-pass")
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	s := newTestService(t)

	_, err := s.Bootstrap("admin@jlsurveying.com", "Admin", "old-password")
	require.NoError(t, err)

	require.ErrorIs(t, s.ChangePassword("x@jlsurveying.com", "old-password", "new-password"), ErrUserNotFound)
	require.ErrorIs(t, s.ChangePassword("admin@jlsurveying.com", "bad", "new-password"), ErrInvalidCurrentPassword)
	require.ErrorIs(t, s.ChangePassword("admin@jlsurveying.com", "old-password", "short"), ErrPasswordTooShort)
	require.NoError(t, s.ChangePassword("admin@jlsurveying.com", "old-password", "new-password"))

	_, err = s.Authenticate("admin@jlsurveying.com", "new-password")
	require.NoError(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	s := newTestService(t)

	cfg := config.Admin{Email: "admin@jlsurveying.com", Name: "Admin User", Password: "from-config"}

	res, err := s.EnsureAdmin(cfg)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Created)

	res, err = s.EnsureAdmin(cfg)
	require.NoError(t, err)
	assert.Nil(t, res)

	users, err := s.List()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Admin User", users[0].Name)
}

func TestVerifySession(t *testing.T) {
	s := newTestService(t)

	res, err := s.Bootstrap("admin@jlsurveying.com", "Admin", "old-password")
	require.NoError(t, err)

	stamp := res.User.PasswordStamp()
	require.NotEmpty(t, stamp)

	user, err := s.VerifySession(res.User.ID, stamp)
	require.NoError(t, err)
	assert.Equal(t, "admin@jlsurveying.com", user.Email)

	_, err = s.VerifySession(res.User.ID, "")
	require.ErrorIs(t, err, ErrSessionRevoked)

	require.NoError(t, s.ChangePassword("admin@jlsurveying.com", "old-password", "new-password"))

	_, err = s.VerifySession(res.User.ID, stamp)
	require.ErrorIs(t, err, ErrSessionRevoked)

	require.NoError(t, s.db.Delete(&models.AdminUser{}, res.User.ID).Error)

	_, err = s.VerifySession(res.User.ID, stamp)
	require.ErrorIs(t, err, ErrUserNotFound)
}
