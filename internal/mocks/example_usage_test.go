package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/mocks"
)

// TestMockDefaults documents the default behavior of each mock
func TestMockDefaults(t *testing.T) {
	ctx := context.Background()

	if _, err := mocks.NewMockUserRepository().FindByEmail(ctx, "a@b.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := mocks.NewMockBookRepository().FindByID(ctx, 1); !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
	if err := mocks.NewMockOTPService().VerifyCode(ctx, "a@b.com", "123456", domain.PurposeActivation); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("expected ErrOTPInvalid, got %v", err)
	}

	pwd := mocks.NewMockPasswordService()
	hash, _ := pwd.Hash("Secret1!")
	if !pwd.Verify(hash, "Secret1!") {
		t.Error("default password mock should verify its own hash")
	}

	page, err := mocks.NewMockBookingRepository().List(ctx, domain.BookingFilter{PageRequest: domain.PageRequest{Page: 1, Limit: 10}})
	if err != nil || page.Meta.Limit != 10 {
		t.Errorf("unexpected default page %+v, %v", page, err)
	}
}

// TestMockOverride shows a table-driven override of a mock function
func TestMockOverride(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mocks.MockUserRepository)
		expectErr  error
	}{
		{
			name: "user found",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return &domain.User{ID: id, Role: domain.RoleUser}, nil
				}
			},
		},
		{
			name:       "default not found",
			setupMocks: func(repo *mocks.MockUserRepository) {},
			expectErr:  domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			tt.setupMocks(repo)

			_, err := repo.FindByID(context.Background(), 5)
			if !errors.Is(err, tt.expectErr) {
				t.Errorf("expected %v, got %v", tt.expectErr, err)
			}
		})
	}

	notify := mocks.NewMockNotificationService()
	_ = notify.SendEmail("a@b.com", "Your OTP Code", "123456", "")
	if len(notify.Sent) != 1 || notify.Sent[0].Subject != "Your OTP Code" {
		t.Errorf("expected one recorded email, got %+v", notify.Sent)
	}
}
