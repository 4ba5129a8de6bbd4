package models

// Session is a row of the database backed session storage.
type Session struct {
	ID        string `gorm:"primaryKey;size:64"`
	Data      []byte
	ExpiresAt int64 `gorm:"index"`
}
