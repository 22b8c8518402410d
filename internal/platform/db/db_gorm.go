// Package db opens the gorm connection backing the favorites store.
package db

import (
	"log"
	"os"

	"sector_dashboard/internal/feature/favorites/domain/entity"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// defaultSQLitePath is where favorites live when no Postgres DSN is set.
const defaultSQLitePath = "favorites.db"

// Config selects the favorites database backend. A non-empty DSN means
// Postgres; otherwise a local SQLite file is used.
type Config struct {
	DSN        string
	SQLitePath string
}

// LoadConfigFromEnv reads the database configuration from environment
// variables (FAVORITES_DSN, FAVORITES_DB).
func LoadConfigFromEnv() Config {
	cfg := Config{
		DSN:        os.Getenv("FAVORITES_DSN"),
		SQLitePath: os.Getenv("FAVORITES_DB"),
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = defaultSQLitePath
	}
	return cfg
}

// Dialector returns the gorm dialector for the configured backend. DSN
// takes precedence over the SQLite path.
func (c Config) Dialector() gorm.Dialector {
	if c.DSN != "" {
		return gpostgres.Open(c.DSN)
	}
	return sqlite.Open(c.SQLitePath)
}

// Open connects and runs the schema migration. TranslateError is on so
// unique-constraint violations surface as gorm.ErrDuplicatedKey on both
// drivers.
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(cfg.Dialector(), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&entity.Favorite{}); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenDB is the startup entry point: it reads the environment and exits the
// process when the database is unusable.
func OpenDB() *gorm.DB {
	db, err := Open(LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}
	return db
}
