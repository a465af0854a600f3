package database

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLiteMemory is a DSN for a private in-memory database shared by the
// connections of one pool.
const SQLiteMemory = "file::memory:?cache=shared"

// OpenSQLite opens a gorm connection to the sqlite database at path, creating
// the parent directory if needed.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path != SQLiteMemory {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory %s: %w", dir, err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent}),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One writer keeps sqlite from returning SQLITE_BUSY under concurrent requests.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
