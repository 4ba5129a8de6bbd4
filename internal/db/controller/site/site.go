// Package site loads and stores the site settings document.
package site

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/db/controller/setting"
	"github.com/jlsurveying/jls-web/internal/db/models"
)

// Settings is the site wide configuration edited in the admin dashboard.
type Settings struct {
	SiteName             string    `form:"site_name"        json:"site_name"             validate:"required,max=255"`
	SiteURL              string    `form:"site_url"         json:"site_url"              validate:"required,url"`
	SiteDescription      string    `form:"site_description" json:"site_description"      validate:"max=1000"`
	ContactEmail         string    `form:"contact_email"    json:"contact_email"         validate:"required,email"`
	ContactPhone         string    `form:"contact_phone"    json:"contact_phone"         validate:"max=100"`
	Address              string    `form:"address"          json:"address"               validate:"max=500"`
	PrimaryColor         string    `form:"primary_color"    json:"primary_color"         validate:"required,hexcolor"`
	DarkMode             bool      `form:"dark_mode"        json:"dark_mode"`
	Animations           bool      `form:"animations"       json:"animations"`
	Font                 string    `form:"font"             json:"font"                  validate:"required,max=100"`
	EmailNotifications   bool      `form:"email_notifications"   json:"email_notifications"`
	SMSNotifications     bool      `form:"sms_notifications"     json:"sms_notifications"`
	BrowserNotifications bool      `form:"browser_notifications" json:"browser_notifications"`
	UpdatedAt            time.Time `form:"-"                json:"updated_at"`
}

// Defaults returns the settings used until an admin saves their own.
func Defaults() Settings {
	return Settings{
		SiteName:        "JL Surveying & Services",
		SiteURL:         "https://jlsurveying.com",
		SiteDescription: "Professional surveying and construction services for all your needs.",
		ContactEmail:    "info@jlsurveying.com",
		ContactPhone:    "(123) 456-7890",
		Address:         "123 Main Street, City, State 12345, United States",
		PrimaryColor:    "#FFD700",
		Animations:      true,
		Font:            "Inter",
	}
}

// Load returns the stored settings laid over the defaults.
// A missing document yields the defaults.
func Load(db *gorm.DB) (Settings, error) {
	s := Defaults()

	err := setting.LoadJSON(db, models.SettingNameSite, &s)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return Defaults(), nil
	}

	if err != nil {
		return Defaults(), err
	}

	return s, nil
}

// Save stores the settings and stamps UpdatedAt.
func Save(db *gorm.DB, s *Settings) error {
	s.UpdatedAt = time.Now().UTC()

	return setting.SaveJSON(db, models.SettingNameSite, s)
}
