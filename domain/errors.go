package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is not activated")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// OTP errors
var (
	ErrOTPInvalid     = errors.New("invalid or expired otp")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden")
)

// Resource errors
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoChanges       = errors.New("no data provided")
	ErrInvalidPage     = errors.New("page number must be > 0")
	ErrInvalidLimit    = errors.New("limit must be > 0")
)

// FieldConflictError reports a unique-constraint violation on a single field
type FieldConflictError struct {
	Field string
	Value string
}

func (e *FieldConflictError) Error() string {
	name := e.Field
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	if e.Value == "" {
		return fmt.Sprintf("%s already exists", name)
	}
	return fmt.Sprintf("%s (%s) already exists", name, e.Value)
}
