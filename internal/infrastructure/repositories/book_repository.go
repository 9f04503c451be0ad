package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/librarysvc/domain"
)

// BookRepositoryImpl implements domain.BookRepository using GORM
type BookRepositoryImpl struct {
	db *gorm.DB
}

// DBBook is the persisted form of a catalog entry
type DBBook struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"uniqueIndex;size:255;not null"`
	Author          string    `gorm:"size:255"`
	Publisher       string    `gorm:"size:255"`
	PublicationYear string    `gorm:"size:16"`
	Subject         string    `gorm:"size:255"`
	CreatedBy       uint      `gorm:"index"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBBook) TableName() string {
	return "books"
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *BookRepositoryImpl {
	return &BookRepositoryImpl{db: db}
}

// Create implements domain.BookRepository
func (r *BookRepositoryImpl) Create(ctx context.Context, book *domain.Book) error {
	row := bookToDB(book)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return asConflict(err, map[string]string{"name": book.Name})
	}
	*book = *bookFromDB(row)
	return nil
}

// FindByID implements domain.BookRepository
func (r *BookRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	var row DBBook
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return bookFromDB(&row), nil
}

// Update implements domain.BookRepository; only non-nil patch fields are written
func (r *BookRepositoryImpl) Update(ctx context.Context, id uint, patch domain.BookPatch) (*domain.Book, error) {
	updates := map[string]interface{}{}
	values := map[string]string{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
			values[col] = *v
		}
	}
	set("name", patch.Name)
	set("author", patch.Author)
	set("publisher", patch.Publisher)
	set("publication_year", patch.PublicationYear)
	set("subject", patch.Subject)

	if len(updates) == 0 {
		return nil, domain.ErrNoChanges
	}

	res := r.db.WithContext(ctx).Model(&DBBook{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, asConflict(res.Error, values)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrBookNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete implements domain.BookRepository; bookings of the book are removed with it
func (r *BookRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&DBBooking{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&DBBook{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBookNotFound
		}
		return nil
	})
}

// List implements domain.BookRepository; searchKey matches the book name
func (r *BookRepositoryImpl) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Book], error) {
	scope := func() *gorm.DB {
		q := r.db.Model(&DBBook{})
		if req.SearchKey != "" {
			q = q.Where("LOWER(name) LIKE ?", likePattern(req.SearchKey))
		}
		return q
	}

	rows, total, err := listPage[DBBook](ctx, scope, req)
	if err != nil {
		return nil, err
	}

	books := make([]domain.Book, 0, len(rows))
	for i := range rows {
		books = append(books, *bookFromDB(&rows[i]))
	}
	return &domain.Page[domain.Book]{Items: books, Meta: domain.Paginate(req.Page, req.Limit, total)}, nil
}

func bookToDB(b *domain.Book) *DBBook {
	return &DBBook{
		ID:              b.ID,
		Name:            b.Name,
		Author:          b.Author,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Subject:         b.Subject,
		CreatedBy:       b.CreatedBy,
	}
}

func bookFromDB(row *DBBook) *domain.Book {
	return &domain.Book{
		ID:              row.ID,
		Name:            row.Name,
		Author:          row.Author,
		Publisher:       row.Publisher,
		PublicationYear: row.PublicationYear,
		Subject:         row.Subject,
		CreatedBy:       row.CreatedBy,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
