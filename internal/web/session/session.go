// Package session keeps the server side state behind the admin session cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jlsurveying/jls-web/internal/db/models"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no session")

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

// User is the part of an admin user kept in the session.
type User struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	// Stamp is AdminUser.PasswordStamp at sign in.
	Stamp string `json:"stamp"`
}

// Data represents the session data structure.
type Data struct {
	User User `json:"user"`
}

// UserFromModel copies the session relevant fields of an admin user.
func UserFromModel(u *models.AdminUser) User {
	return User{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, Stamp: u.PasswordStamp()}
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	// storages return nil for unknown or expired keys
	if len(byteData) == 0 {
		return ErrNoSession
	}

	if err = json.Unmarshal(byteData, s); err != nil {
		return err
	}

	if s.User.ID == 0 {
		return ErrNoSession
	}

	return nil
}

// Init initializes the session store with the provided storage backend.
func Init(storage fiber.Storage, exp time.Duration) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage:        storage,
		Expiration:     exp,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// Start stores a new session for user and sets the cookie.
// secure is false only in dev mode where the site runs on plain http.
func Start(c *fiber.Ctx, user User, exp time.Duration, secure bool) error {
	id, err := GenerateSessionID()
	if err != nil {
		return err
	}

	data := Data{User: user}
	if err = data.Write(id, exp); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(exp),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return nil
}

// Current returns the session of the request.
func Current(c *fiber.Ctx) (*Data, error) {
	data := new(Data)
	if err := data.Read(c.Cookies(CookieName)); err != nil {
		return nil, err
	}

	return data, nil
}

// End removes the session of the request and expires the cookie.
func End(c *fiber.Ctx) error {
	var err error
	if id := c.Cookies(CookieName); id != "" {
		err = Store.Storage.Delete(id)
	}

	c.ClearCookie(CookieName)

	return err
}
