// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/jlsurveying/jls-web/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
// For sqlite the DSN is the database file path.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EngineMySQL:
		return MySQL(db)
	case config.EngineSQLite:
		return db.Path
	default:
		return Postgres(db)
	}
}

// MySQL returns a go-sql-driver style DSN.
func MySQL(db config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres returns a key/value DSN as understood by pgx.
func Postgres(db config.DB) string {
	parts := []string{
		"host=" + db.Host,
		fmt.Sprintf("port=%d", db.Port),
		"user=" + db.User,
		"password=" + db.Password,
		"dbname=" + db.Name,
	}

	if db.Extras != "" {
		parts = append(parts, db.Extras)
	}

	return strings.Join(parts, " ")
}

// URI returns the connection string handed to the session storages.
// MySQL storage takes the driver DSN, Postgres storage a URL.
func URI(db config.DB) string {
	switch db.GormEngine {
	case config.EngineMySQL:
		return MySQL(db)
	default:
		uri := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", db.User, db.Password, db.Host, db.Port, db.Name)
		if db.Extras != "" {
			uri += "?" + strings.Join(strings.Fields(db.Extras), "&")
		}

		return uri
	}
}
