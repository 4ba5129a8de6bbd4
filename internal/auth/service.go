package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/models"
)

const (
	whereEmail = "email = ?"

	generatedPasswordLength = 16
)

// Service authenticates admin users and manages their passwords.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// BootstrapResult describes the outcome of Bootstrap.
type BootstrapResult struct {
	User    models.AdminUser
	Created bool
	// Password is the plaintext password that was set.
	Password string
	// Generated is true when Password was generated because none was given.
	Generated bool
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// FindByEmail returns the admin user with the given email, case-insensitively.
func (s *Service) FindByEmail(email string) (*models.AdminUser, error) {
	var user models.AdminUser

	err := s.db.Where(whereEmail, models.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// Authenticate checks the credentials and records the login time.
func (s *Service) Authenticate(email, password string) (*models.AdminUser, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	match, rehash, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to verify password")

		return nil, ErrInvalidPassword
	}

	if !match {
		return nil, ErrInvalidPassword
	}

	now := s.now().UTC()
	updates := map[string]any{"last_login": now}

	var newHash string
	if rehash {
		if hash, hashErr := HashPassword(password); hashErr == nil {
			newHash = hash
			updates["password_hash"] = hash
		}
	}

	// the returned hash must match the stored one, sessions are stamped with it
	if err = s.db.Model(user).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to update last login")
	} else if newHash != "" {
		user.PasswordHash = newHash
	}

	user.LastLogin = &now

	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(email, currentPassword, newPassword string) error {
	user, err := s.FindByEmail(email)
	if err != nil {
		return err
	}

	match, _, err := VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !match {
		return ErrInvalidCurrentPassword
	}

	if err = ValidateNewPassword(newPassword); err != nil {
		return err
	}

	return s.setPassword(user.ID, newPassword)
}

func (s *Service) setPassword(id uint64, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	if err = s.db.Model(&models.AdminUser{}).Where("id = ?", id).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Bootstrap creates the admin user or resets its password when it exists.
// An empty password is replaced by a random one which is returned in the result.
func (s *Service) Bootstrap(email, name, password string) (*BootstrapResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailEmpty
	}

	res := &BootstrapResult{Password: password}
	if password == "" {
		res.Password = uniuri.NewLen(generatedPasswordLength)
		res.Generated = true
	}

	hash, err := HashPassword(res.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.FindByEmail(email)

	switch {
	case errors.Is(err, ErrUserNotFound):
		res.User = models.AdminUser{
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			Role:         models.RoleAdmin,
		}
		if err = s.db.Create(&res.User).Error; err != nil {
			return nil, fmt.Errorf("failed to create admin user: %w", err)
		}

		res.Created = true
	case err != nil:
		return nil, err
	default:
		user.PasswordHash = hash
		if name != "" {
			user.Name = name
		}

		if err = s.db.Model(user).Updates(map[string]any{
			"password_hash": user.PasswordHash,
			"name":          user.Name,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to update admin user: %w", err)
		}

		res.User = *user
	}

	return res, nil
}

// EnsureAdmin bootstraps the configured admin when admin_users is empty.
// It returns nil when admins already exist.
func (s *Service) EnsureAdmin(cfg config.Admin) (*BootstrapResult, error) {
	var count int64
	if err := s.db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count admin users: %w", err)
	}

	if count > 0 {
		return nil, nil //nolint:nilnil
	}

	return s.Bootstrap(cfg.Email, cfg.Name, cfg.Password)
}

// List returns all admin users ordered by email.
func (s *Service) List() ([]models.AdminUser, error) {
	var users []models.AdminUser
	if err := s.db.Order("email").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}

	return users, nil
}

// VerifySession checks that a session issued to id with stamp is still valid:
// the user exists and its password did not change since sign in.
func (s *Service) VerifySession(id uint64, stamp string) (*models.AdminUser, error) {
	var user models.AdminUser

	err := s.db.Where("id = ?", id).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}

	if stamp == "" || stamp != user.PasswordStamp() {
		return nil, ErrSessionRevoked
	}

	return &user, nil
}
