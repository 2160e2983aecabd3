package db

import (
	"fmt"           // Error formatting
	"os"            // Directory creation for sqlite files
	"path/filepath" // Path handling
	"strings"       // DSN inspection

	"expense_tracker/internal/config" // Driver names

	"github.com/glebarez/sqlite" // Pure Go SQLite driver for GORM
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger
)

// Open connects to the database selected by driver
func Open(driver, dsn string, silent bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if silent {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent) // Keep tests and prod quiet
	}
	switch driver {
	case config.DriverMySQL:
		return gorm.Open(mysql.Open(dsn), gormCfg)
	case config.DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." && dir != "" && !isMemory(dsn) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file:")
}
