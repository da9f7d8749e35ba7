// Package gormdb opens the history database selected by configuration.
package gormdb

import (
	"fmt"

	"gorm.io/gorm"

	"arithma_tech/config"
	"arithma_tech/internal/db/gorm/mysql"
	"arithma_tech/internal/db/gorm/sqlite"
)

// Open -.
func Open(cfg config.Database, mysqlCfg config.MYSQL) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.NewDB(cfg.SQLitePath)
	case "mysql":
		return mysql.NewDB(mysqlCfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unable to get db driver: %w", err)
	}
	return sqlDB.Close()
}
