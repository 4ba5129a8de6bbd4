package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jlsurveying/jls-web/internal/db/models"
)

const defaultGCInterval = 10 * time.Minute

// GormStorage implements fiber.Storage on the sessions table.
// Used for sqlite where no gofiber storage driver is wired.
type GormStorage struct {
	db     *gorm.DB
	cancel context.CancelFunc
}

// NewGormStorage returns a storage and starts expiring old rows every gcInterval.
func NewGormStorage(db *gorm.DB, gcInterval time.Duration) *GormStorage {
	if gcInterval <= 0 {
		gcInterval = defaultGCInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &GormStorage{db: db, cancel: cancel}

	go s.gc(ctx, gcInterval)

	return s
}

func (s *GormStorage) gc(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			err := s.db.Where("expires_at > 0 AND expires_at <= ?", t.Unix()).Delete(&models.Session{}).Error
			if err != nil {
				log.Error().Err(err).Msg("failed to expire sessions")
			}
		}
	}
}

// Get returns the value for key, or nil when it does not exist or expired.
func (s *GormStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var row models.Session

	err := s.db.Where("id = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if row.ExpiresAt > 0 && row.ExpiresAt <= time.Now().Unix() {
		return nil, nil
	}

	return row.Data, nil
}

// Set stores val under key. exp of zero never expires.
func (s *GormStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	row := models.Session{ID: key, Data: val}
	if exp > 0 {
		row.ExpiresAt = time.Now().Add(exp).Unix()
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&row).Error
}

// Delete removes key.
func (s *GormStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.db.Where("id = ?", key).Delete(&models.Session{}).Error
}

// Reset removes every session.
func (s *GormStorage) Reset() error {
	return s.db.Where("1 = 1").Delete(&models.Session{}).Error
}

// Close stops the expiry loop.
func (s *GormStorage) Close() error {
	s.cancel()

	return nil
}
