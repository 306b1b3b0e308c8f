// Package testhelpers provides throwaway databases and fixtures for package tests.
package testhelpers

import (
	"path/filepath"
	"testing"
	"time"

	"hours-tracker/internal/config"
	"hours-tracker/internal/database"

	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated SQLite database in a temp file and installs it
// as database.DB for the duration of the test.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DBConfig{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	Install(t, db)
	return db
}

// Install swaps database.DB for the test and restores the previous handle afterwards.
func Install(t *testing.T, db *gorm.DB) {
	t.Helper()

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

// Date is a UTC midnight, the way dates are stored.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
