package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/librarysvc/internal/infrastructure/repositories"
)

// Open creates a new PostgreSQL connection; verbose enables SQL statement logging
func Open(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates every table the service owns
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&repositories.DBUser{},
		&repositories.DBOTP{},
		&repositories.DBBook{},
		&repositories.DBBooking{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}
