package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/librarysvc/internal/config"
	"github.com/you/librarysvc/internal/infrastructure/auth"
	"github.com/you/librarysvc/internal/infrastructure/database"
	"github.com/you/librarysvc/internal/infrastructure/repositories"
	"github.com/you/librarysvc/internal/services"
)

// Prepares a database for first start: migrate the schema and create the configured admin
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(cfg.DSN, false)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("Database connection successful")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	fmt.Println("Schema migrated")

	users := repositories.NewUserRepository(db)
	created, err := services.SeedAdmin(ctx, users, auth.NewPasswordService(), cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if created {
		fmt.Printf("Admin %s created\n", cfg.AdminEmail)
	} else {
		fmt.Println("An admin already exists, nothing to do")
	}
}
