package mocks

import (
	"context"
	"time"

	"github.com/you/librarysvc/domain"
)

// MockBookService implements domain.BookService interface for testing
type MockBookService struct {
	CreateFunc func(ctx context.Context, creator uint, book *domain.Book) (*domain.Book, error)
	GetFunc    func(ctx context.Context, id uint) (*domain.Book, error)
	UpdateFunc func(ctx context.Context, id uint, patch domain.BookPatch) (*domain.Book, error)
	DeleteFunc func(ctx context.Context, id uint) error
	ListFunc   func(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Book], error)
}

func NewMockBookService() *MockBookService { return &MockBookService{} }

func (m *MockBookService) Create(ctx context.Context, creator uint, book *domain.Book) (*domain.Book, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, creator, book)
	}
	book.ID = 1
	book.CreatedBy = creator
	return book, nil
}

func (m *MockBookService) Get(ctx context.Context, id uint) (*domain.Book, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrBookNotFound
}

func (m *MockBookService) Update(ctx context.Context, id uint, patch domain.BookPatch) (*domain.Book, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, domain.ErrBookNotFound
}

func (m *MockBookService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBookService) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Book], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	return &domain.Page[domain.Book]{Items: []domain.Book{}, Meta: domain.Paginate(req.Page, req.Limit, 0)}, nil
}

// MockBookingService implements domain.BookingService interface for testing
type MockBookingService struct {
	CreateFunc func(ctx context.Context, caller domain.Principal, bookID uint, endDate time.Time, price float64) (*domain.Booking, error)
	GetFunc    func(ctx context.Context, caller domain.Principal, id string) (*domain.Booking, error)
	DeleteFunc func(ctx context.Context, caller domain.Principal, id string) error
	ListFunc   func(ctx context.Context, caller domain.Principal, req domain.PageRequest) (*domain.Page[domain.Booking], error)
}

func NewMockBookingService() *MockBookingService { return &MockBookingService{} }

func (m *MockBookingService) Create(ctx context.Context, caller domain.Principal, bookID uint, endDate time.Time, price float64) (*domain.Booking, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, caller, bookID, endDate, price)
	}
	return &domain.Booking{ID: "booking-1", BookID: bookID, UserID: caller.ID, EndDate: endDate, Price: price}, nil
}

func (m *MockBookingService) Get(ctx context.Context, caller domain.Principal, id string) (*domain.Booking, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, caller, id)
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MockBookingService) Delete(ctx context.Context, caller domain.Principal, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, caller, id)
	}
	return nil
}

func (m *MockBookingService) List(ctx context.Context, caller domain.Principal, req domain.PageRequest) (*domain.Page[domain.Booking], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, caller, req)
	}
	return &domain.Page[domain.Booking]{Items: []domain.Booking{}, Meta: domain.Paginate(req.Page, req.Limit, 0)}, nil
}

// MockUserService implements domain.UserService interface for testing
type MockUserService struct {
	ProfileFunc       func(ctx context.Context, id uint) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error)
	GetFunc           func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc        func(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error)
	DeleteFunc        func(ctx context.Context, id uint) error
	ListFunc          func(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.User], error)
}

func NewMockUserService() *MockUserService { return &MockUserService{} }

func (m *MockUserService) Profile(ctx context.Context, id uint) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, patch)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) Update(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserService) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.User], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	return &domain.Page[domain.User]{Items: []domain.User{}, Meta: domain.Paginate(req.Page, req.Limit, 0)}, nil
}

var (
	_ domain.BookService    = (*MockBookService)(nil)
	_ domain.BookingService = (*MockBookingService)(nil)
	_ domain.UserService    = (*MockUserService)(nil)
)
