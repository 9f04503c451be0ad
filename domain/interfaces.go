package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, req PageRequest) (*Page[User], error)
	ExistsWithRole(ctx context.Context, role Role) (bool, error)
}

// OTPRepository defines one-time passcode persistence
type OTPRepository interface {
	Create(ctx context.Context, otp *OTP) error
	FindLatest(ctx context.Context, email string, purpose OTPPurpose) (*OTP, error)
	Delete(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string, purpose OTPPurpose) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// BookRepository defines catalog persistence
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, id uint) (*Book, error)
	Update(ctx context.Context, id uint, patch BookPatch) (*Book, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, req PageRequest) (*Page[Book], error)
}

// BookingFilter narrows a booking listing; zero UserID means all users
type BookingFilter struct {
	PageRequest
	UserID uint
}

// BookingRepository defines booking persistence
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BookingFilter) (*Page[Booking], error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Activate(ctx context.Context, email, code string) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	RequestOTP(ctx context.Context, email string, purpose OTPPurpose) error
	VerifyOTP(ctx context.Context, email, code string, purpose OTPPurpose) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// RegisterInput carries the fields of a registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// OTPService defines OTP operations
type OTPService interface {
	RequestCode(ctx context.Context, email string, purpose OTPPurpose) error
	VerifyCode(ctx context.Context, email, code string, purpose OTPPurpose) error
	Consume(ctx context.Context, email string, purpose OTPPurpose) error
	CanResend(ctx context.Context, email string, purpose OTPPurpose) (bool, int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// BookService defines catalog business logic
type BookService interface {
	Create(ctx context.Context, creator uint, book *Book) (*Book, error)
	Get(ctx context.Context, id uint) (*Book, error)
	Update(ctx context.Context, id uint, patch BookPatch) (*Book, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, req PageRequest) (*Page[Book], error)
}

// BookingService defines booking business logic
type BookingService interface {
	Create(ctx context.Context, caller Principal, bookID uint, endDate time.Time, price float64) (*Booking, error)
	Get(ctx context.Context, caller Principal, id string) (*Booking, error)
	Delete(ctx context.Context, caller Principal, id string) error
	List(ctx context.Context, caller Principal, req PageRequest) (*Page[Booking], error)
}

// UserService defines user management business logic
type UserService interface {
	Profile(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, patch UserPatch) (*User, error)
	Get(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, id uint, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, req PageRequest) (*Page[User], error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role Role) (string, error)
	GenerateRefreshToken(userID uint, role Role) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines outbound notifications
type NotificationService interface {
	SendEmail(to, subject, textBody, htmlBody string) error
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"id"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	ID        string `json:"jti,omitempty"`
}
