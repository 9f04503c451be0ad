package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrUserNotFound", err: ErrUserNotFound, expectedMsg: "user not found"},
		{name: "ErrInvalidCredentials", err: ErrInvalidCredentials, expectedMsg: "invalid credentials"},
		{name: "ErrUserAlreadyExists", err: ErrUserAlreadyExists, expectedMsg: "user already exists"},
		{name: "ErrUserInactive", err: ErrUserInactive, expectedMsg: "user account is not activated"},
		{name: "ErrOTPInvalid", err: ErrOTPInvalid, expectedMsg: "invalid or expired otp"},
		{name: "ErrOTPResendLimit", err: ErrOTPResendLimit, expectedMsg: "otp resend limit exceeded"},
		{name: "ErrTokenInvalid", err: ErrTokenInvalid, expectedMsg: "invalid token"},
		{name: "ErrTokenExpired", err: ErrTokenExpired, expectedMsg: "token has expired"},
		{name: "ErrBookNotFound", err: ErrBookNotFound, expectedMsg: "book not found"},
		{name: "ErrBookingNotFound", err: ErrBookingNotFound, expectedMsg: "booking not found"},
		{name: "ErrInvalidPage", err: ErrInvalidPage, expectedMsg: "page number must be > 0"},
		{name: "ErrInvalidLimit", err: ErrInvalidLimit, expectedMsg: "limit must be > 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}

			// Test that these are different errors
			for _, other := range tests {
				if other.name != tt.name && errors.Is(tt.err, other.err) {
					t.Errorf("error %s should not be equal to %s", tt.name, other.name)
				}
			}
		})
	}
}

func TestWrappedErrorsKeepIdentity(t *testing.T) {
	wrapped := fmt.Errorf("failed to find book: %w", ErrBookNotFound)
	if !errors.Is(wrapped, ErrBookNotFound) {
		t.Error("wrapped error should match ErrBookNotFound")
	}
	if errors.Is(wrapped, ErrBookingNotFound) {
		t.Error("wrapped error should not match ErrBookingNotFound")
	}
}

func TestFieldConflictError(t *testing.T) {
	tests := []struct {
		name     string
		err      *FieldConflictError
		expected string
	}{
		{name: "with value", err: &FieldConflictError{Field: "name", Value: "Dune"}, expected: "Name (Dune) already exists"},
		{name: "without value", err: &FieldConflictError{Field: "email"}, expected: "Email already exists"},
		{name: "empty field", err: &FieldConflictError{}, expected: " already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	var target *FieldConflictError
	err := fmt.Errorf("failed to create book: %w", &FieldConflictError{Field: "name", Value: "x"})
	if !errors.As(err, &target) {
		t.Fatal("errors.As should find FieldConflictError")
	}
	if target.Field != "name" {
		t.Errorf("expected field name, got %q", target.Field)
	}
}
