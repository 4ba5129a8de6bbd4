package site_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/db/controller/setting"
	"github.com/jlsurveying/jls-web/internal/db/controller/site"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/db/testutil"
)

func TestLoadDefaults(t *testing.T) {
	db := testutil.NewDB(t)

	s, err := site.Load(db)
	require.NoError(t, err)
	assert.Equal(t, site.Defaults(), s)
	assert.Equal(t, "JL Surveying & Services", s.SiteName)
	assert.True(t, s.Animations)
	assert.False(t, s.DarkMode)
}

func TestSaveAndLoad(t *testing.T) {
	db := testutil.NewDB(t)

	s := site.Defaults()
	s.SiteName = "JL Surveying"
	s.DarkMode = true

	require.NoError(t, site.Save(db, &s))
	assert.False(t, s.UpdatedAt.IsZero())

	got, err := site.Load(db)
	require.NoError(t, err)
	assert.Equal(t, "JL Surveying", got.SiteName)
	assert.True(t, got.DarkMode)
	assert.WithinDuration(t, s.UpdatedAt, got.UpdatedAt, 0)
}

func TestLoadPartialDocumentKeepsDefaults(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := setting.Set(db, models.SettingNameSite, []byte(`{"site_name":"Other"}`))
	require.NoError(t, err)

	got, err := site.Load(db)
	require.NoError(t, err)
	assert.Equal(t, "Other", got.SiteName)
	assert.Equal(t, "#FFD700", got.PrimaryColor)
}

func TestLoadBrokenDocument(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := setting.Set(db, models.SettingNameSite, []byte(`{`))
	require.NoError(t, err)

	got, err := site.Load(db)
	require.Error(t, err)
	assert.Equal(t, site.Defaults(), got)
}
