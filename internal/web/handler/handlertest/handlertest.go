// Package handlertest provides the fixtures shared by handler tests.
package handlertest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/testutil"
	mwauth "github.com/jlsurveying/jls-web/internal/web/middleware/auth"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

// AdminEmail and AdminPassword are the credentials of the seeded admin.
const (
	AdminEmail    = "admin@jlsurveying.com"
	AdminPassword = "admin123!"
)

// Views is a minimal Fiber Views engine used for tests.
// It writes the template name followed by any "error" and "Success" values
// and remembers the data of the last render.
type Views struct {
	mu       sync.Mutex
	lastName string
	lastData fiber.Map
}

// Load implements fiber.Views.
func (*Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data any, _ ...string) error {
	m, _ := data.(fiber.Map)

	v.mu.Lock()
	v.lastName = name
	v.lastData = m
	v.mu.Unlock()

	_, _ = io.WriteString(w, name)

	for _, key := range []string{"error", "Error", "Success"} {
		switch val := m[key].(type) {
		case string:
			_, _ = io.WriteString(w, "\n"+val)
		case []string:
			_, _ = io.WriteString(w, "\n"+strings.Join(val, "\n"))
		case error:
			_, _ = io.WriteString(w, "\n"+val.Error())
		}
	}

	return nil
}

// Last returns the template name and data of the last render.
func (v *Views) Last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.lastName, v.lastData
}

// MemoryStorage is a minimal in-memory implementation of fiber.Storage for tests.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ fiber.Storage = (*MemoryStorage)(nil)

// Get implements fiber.Storage.
func (s *MemoryStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	return append([]byte(nil), v...), nil
}

// Set implements fiber.Storage.
func (s *MemoryStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	s.data[key] = append([]byte(nil), val...)

	return nil
}

// Delete implements fiber.Storage.
func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Reset implements fiber.Storage.
func (s *MemoryStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

// Close implements fiber.Storage.
func (*MemoryStorage) Close() error { return nil }

// Env bundles what a handler test needs.
type Env struct {
	App   *fiber.App
	DB    *gorm.DB
	Cfg   *config.Config
	Views *Views
}

// NewConfig returns a config suitable for handler tests.
func NewConfig() *config.Config {
	return &config.Config{
		Title: "Test",
		Webserver: config.Webserver{
			URL:       "http://localhost",
			Port:      3000,
			CacheSize: 16,
			CacheTTL:  time.Minute,
			Session:   config.Session{ExpiryTime: time.Minute},
		},
		Admin: config.Admin{Email: AdminEmail, Name: "Admin User", Password: AdminPassword},
	}
}

// New returns a fresh app, database with the seeded admin and session store.
func New(t *testing.T) *Env {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := NewConfig()

	_, err := auth.NewService(db).Bootstrap(AdminEmail, "Admin User", AdminPassword)
	require.NoError(t, err)

	session.Init(&MemoryStorage{data: make(map[string][]byte)}, cfg.Webserver.Session.ExpiryTime)
	mwauth.Init(db)

	views := &Views{}

	return &Env{
		App:   fiber.New(fiber.Config{Views: views, Immutable: true}),
		DB:    db,
		Cfg:   cfg,
		Views: views,
	}
}

// SessionCookie stores a session for the seeded admin and returns its cookie.
func (e *Env) SessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	user, err := auth.NewService(e.DB).FindByEmail(AdminEmail)
	require.NoError(t, err)

	id, err := session.GenerateSessionID()
	require.NoError(t, err)

	data := session.Data{User: session.UserFromModel(user)}
	require.NoError(t, data.Write(id, time.Minute))

	return &http.Cookie{Name: session.CookieName, Value: id}
}

// Do performs a request. A non-nil cookie is attached.
func (e *Env) Do(t *testing.T, req *http.Request, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()

	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	_ = resp.Body.Close()

	return resp, string(body)
}

// Get performs a GET request.
func (e *Env) Get(t *testing.T, target string, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()

	return e.Do(t, httptest.NewRequest(http.MethodGet, target, nil), cookie)
}

// PostForm performs a url encoded form POST.
func (e *Env) PostForm(t *testing.T, target string, form url.Values, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return e.Do(t, req, cookie)
}

// PostJSON performs a JSON POST with a raw body.
func (e *Env) PostJSON(t *testing.T, target, body string, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return e.Do(t, req, cookie)
}

// Recorder is a cache.Revalidator remembering what was revalidated.
type Recorder struct {
	mu     sync.Mutex
	Paths  [][]string
	Purges int
}

// Revalidate implements cache.Revalidator.
func (r *Recorder) Revalidate(paths ...string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Paths = append(r.Paths, paths)

	return paths
}

// PurgeAll implements cache.Revalidator.
func (r *Recorder) PurgeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Purges++
}

// Last returns the paths of the last Revalidate call.
func (r *Recorder) Last() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Paths) == 0 {
		return nil
	}

	return r.Paths[len(r.Paths)-1]
}

// String helps failing assertions.
func (r *Recorder) String() string {
	return fmt.Sprintf("%v purges=%d", r.Paths, r.Purges)
}
