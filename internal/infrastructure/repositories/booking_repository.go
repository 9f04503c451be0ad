package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/librarysvc/domain"
)

// BookingRepositoryImpl implements domain.BookingRepository using GORM
type BookingRepositoryImpl struct {
	db *gorm.DB
}

// DBBooking is the persisted form of a booking
type DBBooking struct {
	ID        string    `gorm:"primaryKey;size:36"`
	BookID    uint      `gorm:"index;not null"`
	UserID    uint      `gorm:"index;not null"`
	EndDate   time.Time `gorm:"not null"`
	Price     float64   `gorm:"not null"`
	Book      *DBBook   `gorm:"foreignKey:BookID"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBBooking) TableName() string {
	return "bookings"
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

// Create implements domain.BookingRepository; an empty ID is assigned a UUID
func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *domain.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	row := &DBBooking{
		ID:      booking.ID,
		BookID:  booking.BookID,
		UserID:  booking.UserID,
		EndDate: booking.EndDate,
		Price:   booking.Price,
	}
	if err := r.db.WithContext(ctx).Omit("Book").Create(row).Error; err != nil {
		return err
	}
	booking.CreatedAt = row.CreatedAt
	booking.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.BookingRepository
func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	var row DBBooking
	err := r.db.WithContext(ctx).Preload("Book").Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return bookingFromDB(&row), nil
}

// Delete implements domain.BookingRepository
func (r *BookingRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBBooking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// List implements domain.BookingRepository; searchKey matches the booking id or the book name
func (r *BookingRepositoryImpl) List(ctx context.Context, filter domain.BookingFilter) (*domain.Page[domain.Booking], error) {
	scope := func() *gorm.DB {
		q := r.db.Model(&DBBooking{})
		if filter.UserID != 0 {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.SearchKey != "" {
			p := likePattern(filter.SearchKey)
			q = q.Where("LOWER(id) LIKE ? OR book_id IN (?)", p,
				r.db.Model(&DBBook{}).Select("id").Where("LOWER(name) LIKE ?", p))
		}
		return q
	}

	rows, total, err := listPage[DBBooking](ctx, scope, filter.PageRequest, "Book")
	if err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, *bookingFromDB(&rows[i]))
	}
	return &domain.Page[domain.Booking]{Items: bookings, Meta: domain.Paginate(filter.Page, filter.Limit, total)}, nil
}

func bookingFromDB(row *DBBooking) *domain.Booking {
	b := &domain.Booking{
		ID:        row.ID,
		BookID:    row.BookID,
		UserID:    row.UserID,
		EndDate:   row.EndDate,
		Price:     row.Price,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Book != nil {
		b.Book = bookFromDB(row.Book)
	}
	return b
}
