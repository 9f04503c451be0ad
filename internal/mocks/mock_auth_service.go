package mocks

import (
	"context"

	"github.com/you/librarysvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, in domain.RegisterInput) (*domain.User, error)
	ActivateFunc       func(ctx context.Context, email, code string) (*domain.User, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshTokenFunc   func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	RequestOTPFunc     func(ctx context.Context, email string, purpose domain.OTPPurpose) error
	VerifyOTPFunc      func(ctx context.Context, email, code string, purpose domain.OTPPurpose) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, email, code, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &domain.User{
		ID:        1,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      domain.RoleUser,
		Status:    domain.StatusDisabled,
	}, nil
}

// Activate enables an account
func (m *MockAuthService) Activate(ctx context.Context, email, code string) (*domain.User, error) {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, email, code)
	}
	return nil, domain.ErrOTPInvalid
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: invalid credentials
	return nil, domain.ErrInvalidCredentials
}

// RefreshToken issues a new token pair
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return nil, domain.ErrUnauthorized
}

func (m *MockAuthService) RequestOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, email, purpose)
	}
	return nil
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code, purpose)
	}
	return domain.ErrOTPInvalid
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	return domain.ErrOTPInvalid
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
