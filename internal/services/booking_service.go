package services

import (
	"context"
	"fmt"
	"time"

	"github.com/you/librarysvc/domain"
)

// BookingServiceImpl implements domain.BookingService.
// Non-admin callers only ever see or remove their own bookings.
type BookingServiceImpl struct {
	bookingRepo domain.BookingRepository
	bookRepo    domain.BookRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo domain.BookingRepository, bookRepo domain.BookRepository) *BookingServiceImpl {
	return &BookingServiceImpl{bookingRepo: bookingRepo, bookRepo: bookRepo}
}

// Create implements domain.BookingService.
// The book lookup and the insert are separate statements; two callers can book
// the same book concurrently and both succeed.
func (s *BookingServiceImpl) Create(ctx context.Context, caller domain.Principal, bookID uint, endDate time.Time, price float64) (*domain.Booking, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		BookID:  book.ID,
		UserID:  caller.ID,
		EndDate: endDate,
		Price:   price,
		Book:    book,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// Get implements domain.BookingService
func (s *BookingServiceImpl) Get(ctx context.Context, caller domain.Principal, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(booking.UserID) {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// Delete implements domain.BookingService
func (s *BookingServiceImpl) Delete(ctx context.Context, caller domain.Principal, id string) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// List implements domain.BookingService
func (s *BookingServiceImpl) List(ctx context.Context, caller domain.Principal, req domain.PageRequest) (*domain.Page[domain.Booking], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := domain.BookingFilter{PageRequest: req}
	if !caller.Role.IsAdmin() {
		filter.UserID = caller.ID
	}
	return s.bookingRepo.List(ctx, filter)
}
