package mocks

import (
	"context"

	"github.com/you/librarysvc/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	RequestCodeFunc  func(ctx context.Context, email string, purpose domain.OTPPurpose) error
	VerifyCodeFunc   func(ctx context.Context, email, code string, purpose domain.OTPPurpose) error
	ConsumeFunc      func(ctx context.Context, email string, purpose domain.OTPPurpose) error
	CanResendFunc    func(ctx context.Context, email string, purpose domain.OTPPurpose) (bool, int64, error)
	PurgeExpiredFunc func(ctx context.Context) (int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) RequestCode(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, email, purpose)
	}
	return nil
}

func (m *MockOTPService) VerifyCode(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, email, code, purpose)
	}
	// Default behavior: reject
	return domain.ErrOTPInvalid
}

func (m *MockOTPService) Consume(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, email, purpose)
	}
	return nil
}

func (m *MockOTPService) CanResend(ctx context.Context, email string, purpose domain.OTPPurpose) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, email, purpose)
	}
	return true, 0, nil
}

func (m *MockOTPService) PurgeExpired(ctx context.Context) (int64, error) {
	if m.PurgeExpiredFunc != nil {
		return m.PurgeExpiredFunc(ctx)
	}
	return 0, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
