// Package content provides the queries behind the public pages and the admin CRUD screens.
package content

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/db/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Model lists the content tables handled here.
type Model interface {
	models.Service | models.Project | models.News | models.TeamMember | models.Message
}

// Orderings used by the pages.
const (
	OrderIDAsc          = "id ASC"
	OrderNewestFirst    = "created_at DESC, id DESC"
	OrderPublishedFirst = "publish_date DESC, id DESC"
)

// Query narrows a List call. Zero value lists everything by id.
type Query struct {
	Order string
	Limit int
	// Where is matched column by column; gorm quotes the column names.
	Where map[string]any
}

func scoped(db *gorm.DB, q Query) *gorm.DB {
	tx := db

	if len(q.Where) > 0 {
		tx = tx.Where(q.Where)
	}

	order := q.Order
	if order == "" {
		order = OrderIDAsc
	}

	tx = tx.Order(order)

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	return tx
}

// List returns the records matching q.
func List[T Model](db *gorm.DB, q Query) ([]T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out []T
	if err := scoped(db, q).Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Get returns the record with the given id.
func Get[T Model](db *gorm.DB, id uint64) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var v T
	if err := db.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &v, nil
}

// Create inserts v and fills its id.
func Create[T Model](db *gorm.DB, v *T) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(v).Error
}

// Update writes every column of v.
func Update[T Model](db *gorm.DB, v *T) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Save(v).Error
}

// Delete removes the record with the given id.
func Delete[T Model](db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of records, optionally filtered column by column.
func Count[T Model](db *gorm.DB, where map[string]any) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	tx := db.Model(new(T))
	if len(where) > 0 {
		tx = tx.Where(where)
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}

	return n, nil
}
