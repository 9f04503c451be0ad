package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/librarysvc/domain"
)

// SeedAdmin creates an enabled administrator when none exists yet.
// It reports whether a user was created.
func SeedAdmin(ctx context.Context, userRepo domain.UserRepository, passwordSvc domain.PasswordService, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}

	exists, err := userRepo.ExistsWithRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to check for admin: %w", err)
	}
	if exists {
		return false, nil
	}

	hashed, err := passwordSvc.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusEnabled,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
