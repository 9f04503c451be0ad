package mocks

import (
	"context"

	"github.com/you/librarysvc/domain"
)

// MockBookRepository implements domain.BookRepository interface for testing
type MockBookRepository struct {
	CreateFunc   func(ctx context.Context, book *domain.Book) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Book, error)
	UpdateFunc   func(ctx context.Context, id uint, patch domain.BookPatch) (*domain.Book, error)
	DeleteFunc   func(ctx context.Context, id uint) error
	ListFunc     func(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Book], error)
}

// NewMockBookRepository creates a new MockBookRepository with default behaviors
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{}
}

func (m *MockBookRepository) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, book)
	}
	return nil
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrBookNotFound
}

func (m *MockBookRepository) Update(ctx context.Context, id uint, patch domain.BookPatch) (*domain.Book, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, domain.ErrBookNotFound
}

func (m *MockBookRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBookRepository) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Book], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	return &domain.Page[domain.Book]{Items: []domain.Book{}, Meta: domain.Paginate(req.Page, req.Limit, 0)}, nil
}

var _ domain.BookRepository = (*MockBookRepository)(nil)
