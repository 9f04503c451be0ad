package mocks

import (
	"context"

	"github.com/you/librarysvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	DeleteFunc         func(ctx context.Context, id uint) error
	ListFunc           func(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.User], error)
	ExistsWithRoleFunc func(ctx context.Context, role domain.Role) (bool, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// List returns a page of users
func (m *MockUserRepository) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.User], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	// Default behavior: empty page
	return &domain.Page[domain.User]{Items: []domain.User{}, Meta: domain.Paginate(req.Page, req.Limit, 0)}, nil
}

// ExistsWithRole reports whether any user holds role
func (m *MockUserRepository) ExistsWithRole(ctx context.Context, role domain.Role) (bool, error) {
	if m.ExistsWithRoleFunc != nil {
		return m.ExistsWithRoleFunc(ctx, role)
	}
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
