package mocks

import (
	"context"

	"github.com/you/librarysvc/domain"
)

// MockBookingRepository implements domain.BookingRepository interface for testing
type MockBookingRepository struct {
	CreateFunc   func(ctx context.Context, booking *domain.Booking) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Booking, error)
	DeleteFunc   func(ctx context.Context, id string) error
	ListFunc     func(ctx context.Context, filter domain.BookingFilter) (*domain.Page[domain.Booking], error)
}

// NewMockBookingRepository creates a new MockBookingRepository with default behaviors
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{}
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return nil
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingFilter) (*domain.Page[domain.Booking], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return &domain.Page[domain.Booking]{Items: []domain.Booking{}, Meta: domain.Paginate(filter.Page, filter.Limit, 0)}, nil
}

var _ domain.BookingRepository = (*MockBookingRepository)(nil)
