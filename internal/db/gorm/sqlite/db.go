package sqlite

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the sqlite file at path. An empty path opens a private in-memory database.
func NewDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database %q: %w", dsn, err)
	}

	if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName("arithma_tech"))); err != nil {
		return nil, fmt.Errorf("failed to set gorm plugin for opentelemetry: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}

	// sqlite serializes writers; one connection also keeps an in-memory database alive.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
