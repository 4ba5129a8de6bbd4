package config

import (
	"time"

	"github.com/jlsurveying/jls-web/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Admin     Admin
	Redis     Redis
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic    bool          // enable static file browsing (for development purposes only)
	DisableRecover  bool          // disable recover middleware
	Port            int           // listening port for the webserver
	ShutDownTime    int           // wait time for shutdown
	URL             string        // base url for the webserver
	CacheEnabled    bool          // cache rendered public pages until revalidated
	CacheSize       int           // max number of cached pages
	CacheTTL        time.Duration // upper bound for a cached page without revalidation
	RevalidateToken string        // shared secret for POST /api/revalidate without a session
	Session         Session       // session settings
}

// Admin holds the bootstrap admin account.
type Admin struct {
	Email              string
	Name               string
	Password           string // empty generates a random password on bootstrap
	AllowSetupEndpoint bool   // expose GET /api/auth/setup
}

// Redis fans out page cache revalidation to every instance.
type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Channel  string
}
