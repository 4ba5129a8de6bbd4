package config

import "time"

const (
	// EnginePostgres selects the PostgreSQL gorm driver.
	EnginePostgres = "postgres"
	// EngineMySQL selects the MySQL gorm driver.
	EngineMySQL = "mysql"
	// EngineSQLite selects the pure Go SQLite driver.
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string // postgres, mysql or sqlite
	Path       string // sqlite database file

	ConnectRetries    uint          // attempts before giving up on the first connection
	ConnectRetryDelay time.Duration // fixed delay between attempts
}
