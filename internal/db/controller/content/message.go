package content

import (
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/db/models"
)

// Message filters offered by the inbox.
const (
	FilterAll    = "all"
	FilterUnread = "unread"
	FilterRead   = "read"
)

// MessageQuery returns the inbox query for a filter. Unknown filters list all.
func MessageQuery(filter string) Query {
	q := Query{Order: OrderNewestFirst}

	switch filter {
	case FilterUnread:
		q.Where = map[string]any{"read": false}
	case FilterRead:
		q.Where = map[string]any{"read": true}
	}

	return q
}

// SetRead flags a message as read or unread.
func SetRead(db *gorm.DB, id uint64, read bool) error {
	if db == nil {
		return ErrDBNil
	}

	// mysql reports zero affected rows for unchanged values
	if _, err := Get[models.Message](db, id); err != nil {
		return err
	}

	return db.Model(&models.Message{}).Where("id = ?", id).Update("read", read).Error
}
