// Package setting provides CRUD operations for the key/value settings table.
package setting

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when a setting name is empty.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func check(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}

	if name == "" {
		return ErrSettingNameEmpty
	}

	return nil
}

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if err := check(db, name); err != nil {
		return nil, err
	}

	var s models.Setting
	if err := db.Where(nameQueryPattern, name).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, err
	}

	return &s, nil
}

// GetAll retrieves all settings ordered by name.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	if err := db.Order("name").Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

// Set creates or updates a setting by name.
func Set(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if err := check(db, name); err != nil {
		return nil, err
	}

	s, err := Get(db, name)

	switch {
	case errors.Is(err, ErrSettingNotFound):
		s = &models.Setting{Name: name, Value: value}
		if err = db.Create(s).Error; err != nil {
			return nil, err
		}

		return s, nil
	case err != nil:
		return nil, err
	}

	s.Value = value
	if err = db.Save(s).Error; err != nil {
		return nil, err
	}

	return s, nil
}

// Delete deletes a setting by name.
func Delete(db *gorm.DB, name string) error {
	if err := check(db, name); err != nil {
		return err
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// LoadJSON decodes the JSON document stored under name into v.
func LoadJSON(db *gorm.DB, name string, v any) error {
	s, err := Get(db, name)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(s.Value, v); err != nil {
		return fmt.Errorf("decode setting %q: %w", name, err)
	}

	return nil
}

// SaveJSON stores v as a JSON document under name.
func SaveJSON(db *gorm.DB, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", name, err)
	}

	_, err = Set(db, name, data)

	return err
}
