package repositories

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// list and count run on separate goroutines; one connection keeps them on the same database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&DBUser{}, &DBOTP{}, &DBBook{}, &DBBooking{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedBooks(t *testing.T, db *gorm.DB, names ...string) []DBBook {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]DBBook, 0, len(names))
	for i, name := range names {
		row := DBBook{
			Name:      name,
			Author:    "Author " + name,
			CreatedBy: 1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to seed book %q: %v", name, err)
		}
		rows = append(rows, row)
	}
	return rows
}
