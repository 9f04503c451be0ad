package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/librarysvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	FirstName    string    `gorm:"size:50"`
	LastName     string    `gorm:"size:50"`
	Role         string    `gorm:"index;size:16;default:USER"`
	Status       string    `gorm:"index;size:16;default:DISABLED"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return asConflict(err, map[string]string{"email": user.Email})
	}
	*user = *r.dbToDomain(dbUser)
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Save(dbUser).Error; err != nil {
		return asConflict(err, map[string]string{"email": user.Email})
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List implements domain.UserRepository; searchKey matches first name, last name or email
func (r *UserRepositoryImpl) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.User], error) {
	scope := func() *gorm.DB {
		q := r.db.Model(&DBUser{})
		if req.SearchKey != "" {
			p := likePattern(req.SearchKey)
			q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", p, p, p)
		}
		return q
	}

	rows, total, err := listPage[DBUser](ctx, scope, req)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *r.dbToDomain(&rows[i]))
	}
	return &domain.Page[domain.User]{Items: users, Meta: domain.Paginate(req.Page, req.Limit, total)}, nil
}

// ExistsWithRole implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsWithRole(ctx context.Context, role domain.Role) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("role = ?", string(role)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		Status:       string(user.Status),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		Role:         domain.Role(dbUser.Role),
		Status:       domain.UserStatus(dbUser.Status),
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
