package mocks

import (
	"context"
	"time"

	"github.com/you/librarysvc/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	CreateFunc        func(ctx context.Context, otp *domain.OTP) error
	FindLatestFunc    func(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTP, error)
	DeleteFunc        func(ctx context.Context, id uint) error
	DeleteByEmailFunc func(ctx context.Context, email string, purpose domain.OTPPurpose) error
	DeleteExpiredFunc func(ctx context.Context, now time.Time) (int64, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Create(ctx context.Context, otp *domain.OTP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	return nil
}

func (m *MockOTPRepository) FindLatest(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTP, error) {
	if m.FindLatestFunc != nil {
		return m.FindLatestFunc(ctx, email, purpose)
	}
	// Default behavior: no code on record
	return nil, domain.ErrOTPInvalid
}

func (m *MockOTPRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) DeleteByEmail(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email, purpose)
	}
	return nil
}

func (m *MockOTPRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}

var _ domain.OTPRepository = (*MockOTPRepository)(nil)
