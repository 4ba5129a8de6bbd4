package daemon

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/dsn"
	"github.com/jlsurveying/jls-web/internal/web/session"
)

const (
	// sessionTable is managed by the gofiber storage drivers.
	// The sessions table belongs to the gorm model used on sqlite.
	sessionTable = "fiber_storage"

	sessionGCInterval = 10 * time.Minute
)

// newSessionStorage picks the session storage matching the database engine.
func newSessionStorage(cfg *config.Config, db *gorm.DB) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.New(mysql.Config{
			ConnectionURI: dsn.URI(cfg.DB),
			Table:         sessionTable,
			GCInterval:    sessionGCInterval,
		})
	case config.EngineSQLite:
		return session.NewGormStorage(db, sessionGCInterval)
	default:
		return postgres.New(postgres.Config{
			ConnectionURI: dsn.URI(cfg.DB),
			Table:         sessionTable,
			GCInterval:    sessionGCInterval,
		})
	}
}
