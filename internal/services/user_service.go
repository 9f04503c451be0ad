package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/librarysvc/domain"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

// Profile implements domain.UserService
func (s *UserServiceImpl) Profile(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// UpdateProfile implements domain.UserService. Role and status changes are ignored.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	patch.Role = nil
	patch.Status = nil
	return s.update(ctx, id, patch)
}

// Get implements domain.UserService
func (s *UserServiceImpl) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Update implements domain.UserService
func (s *UserServiceImpl) Update(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	return s.update(ctx, id, patch)
}

func (s *UserServiceImpl) update(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return nil, domain.ErrNoChanges
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		var conflict *domain.FieldConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete implements domain.UserService
func (s *UserServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// List implements domain.UserService
func (s *UserServiceImpl) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.User], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, req)
}
