package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/maccam68/caredesk/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupSeededDB migrates and seeds the master account and starter data
func setupSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := setupTestDB(t)
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
	return db
}
