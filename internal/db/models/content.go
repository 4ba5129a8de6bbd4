package models

import "time"

// DefaultServiceIcon is used when a service has no icon set.
const DefaultServiceIcon = "FileText"

// Project categories offered by the admin forms.
const (
	CategoryCommercial      = "Commercial"
	CategoryResidential     = "Residential"
	CategoryIndustrial      = "Industrial"
	CategoryMixedUse        = "Mixed-Use"
	CategoryLandDevelopment = "Land Development"
	CategoryInfrastructure  = "Infrastructure"
)

// ProjectCategories lists the categories in display order.
var ProjectCategories = []string{ //nolint:gochecknoglobals
	CategoryCommercial,
	CategoryResidential,
	CategoryIndustrial,
	CategoryMixedUse,
	CategoryLandDevelopment,
	CategoryInfrastructure,
}

// Service is an offering shown on the services page.
type Service struct {
	ID          uint64   `gorm:"primaryKey"`
	Title       string   `gorm:"size:255;not null"`
	Description string   `gorm:"type:text;not null"`
	ImageURL    string   `gorm:"size:1024"`
	Features    []string `gorm:"type:text;serializer:json"`
	Icon        string   `gorm:"size:100;default:'FileText'"`
	CreatedAt   time.Time
}

// Project is a completed job shown in the portfolio.
type Project struct {
	ID             uint64 `gorm:"primaryKey"`
	Title          string `gorm:"size:255;not null"`
	Description    string `gorm:"type:text;not null"`
	Details        string `gorm:"type:text"`
	ImageURL       string `gorm:"size:1024"`
	Location       string `gorm:"size:255;not null"`
	CompletionDate string `gorm:"size:100;not null"`
	Category       string `gorm:"size:100;not null"`
	CreatedAt      time.Time
}

// News is a dated article.
type News struct {
	ID          uint64    `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text;not null"`
	Content     string    `gorm:"type:text"`
	ImageURL    string    `gorm:"size:1024"`
	Author      string    `gorm:"size:255;not null"`
	PublishDate time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName overrides the gorm default.
func (News) TableName() string {
	return "news"
}

// TeamMember is shown on the about page.
type TeamMember struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Position  string `gorm:"size:255;not null"`
	Bio       string `gorm:"type:text;not null"`
	ImageURL  string `gorm:"size:1024"`
	CreatedAt time.Time
}

// TableName overrides the gorm default.
func (TeamMember) TableName() string {
	return "team"
}

// Message is a contact form submission.
type Message struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:100"`
	Message   string `gorm:"type:text;not null"`
	Read      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}
