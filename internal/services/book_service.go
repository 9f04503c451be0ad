package services

import (
	"context"
	"fmt"

	"github.com/you/librarysvc/domain"
)

// BookServiceImpl implements domain.BookService
type BookServiceImpl struct {
	bookRepo domain.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo domain.BookRepository) *BookServiceImpl {
	return &BookServiceImpl{bookRepo: bookRepo}
}

// Create implements domain.BookService
func (s *BookServiceImpl) Create(ctx context.Context, creator uint, book *domain.Book) (*domain.Book, error) {
	book.ID = 0
	book.CreatedBy = creator
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// Get implements domain.BookService
func (s *BookServiceImpl) Get(ctx context.Context, id uint) (*domain.Book, error) {
	return s.bookRepo.FindByID(ctx, id)
}

// Update implements domain.BookService
func (s *BookServiceImpl) Update(ctx context.Context, id uint, patch domain.BookPatch) (*domain.Book, error) {
	if patch.Empty() {
		return nil, domain.ErrNoChanges
	}
	book, err := s.bookRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// Delete implements domain.BookService
func (s *BookServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// List implements domain.BookService
func (s *BookServiceImpl) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Book], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.bookRepo.List(ctx, req)
}
