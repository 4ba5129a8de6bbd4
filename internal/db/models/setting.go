// Package models contains database model definitions.
package models

// SettingNameSite is the settings row holding the site settings document.
const SettingNameSite = "site"

// Setting represents a configuration setting stored in the database.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique;size:100;not null"`
	Value []byte
}

// All returns every model managed by the database migration.
func All() []any {
	return []any{
		&Service{},
		&Project{},
		&News{},
		&TeamMember{},
		&Message{},
		&Setting{},
		&AdminUser{},
		&Session{},
	}
}
