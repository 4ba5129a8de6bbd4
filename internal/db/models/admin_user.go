package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// RoleAdmin is the only role known to the dashboard.
const RoleAdmin = "admin"

// AdminUser is an account allowed to sign in to the admin dashboard.
type AdminUser struct {
	ID uint64 `gorm:"primaryKey"`
	// Email is the login name, always stored lower-case.
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:255"`
	Role         string `gorm:"size:50;not null;default:'admin'"`
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// TableName overrides the gorm default.
func (AdminUser) TableName() string {
	return "admin_users"
}

// NormalizeEmail returns the form an email is stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordStamp fingerprints the current password hash.
// Sessions carry it and lose validity once the password changes.
func (u *AdminUser) PasswordStamp() string {
	sum := sha256.Sum256([]byte(u.PasswordHash))

	return hex.EncodeToString(sum[:8])
}
