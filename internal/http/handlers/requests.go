package handlers

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/you/librarysvc/domain"
)

const passwordRuleMessage = "Password must have at least 6 characters, one symbol, one number, and one uppercase letter."

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	digitRe  = regexp.MustCompile(`\d`)
	symbolRe = regexp.MustCompile(`[\W_]`)
)

// passwordRules enforces 6-16 characters with an uppercase letter, a digit and a symbol
func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(6, 16),
		validation.Match(upperRe).Error(passwordRuleMessage),
		validation.Match(digitRe).Error(passwordRuleMessage),
		validation.Match(symbolRe).Error(passwordRuleMessage),
	}
}

func stringEquals(str string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("passwords do not match")
		}
		return nil
	}
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func isoDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return errors.New("must be an ISO 8601 date")
	}
	return nil
}

func purposeRule(value interface{}) error {
	p, _ := value.(string)
	if p == "" || domain.OTPPurpose(p).Valid() {
		return nil
	}
	return errors.New("must be ACTIVATION or PASSWORD_RESET")
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, passwordRules()...),
	)
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// EmailRequest carries a single email address
type EmailRequest struct {
	Email string `json:"email"`
}

func (r EmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ActivateRequest is the body of POST /auth/activate
type ActivateRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r ActivateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

// OTPRequest is the body of POST /auth/request-otp
type OTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

func (r OTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Purpose, validation.By(purposeRule)),
	)
}

// purpose defaults to account activation
func (r OTPRequest) purpose() domain.OTPPurpose {
	if r.Purpose == "" {
		return domain.PurposeActivation
	}
	return domain.OTPPurpose(r.Purpose)
}

// OTPVerifyRequest is the body of POST /auth/verify-otp
type OTPVerifyRequest struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

func (r OTPVerifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.Purpose, validation.By(purposeRule)),
	)
}

func (r OTPVerifyRequest) purpose() domain.OTPPurpose {
	return OTPRequest{Purpose: r.Purpose}.purpose()
}

// ResetPasswordRequest is the body of POST /auth/reset-password
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.NewPassword, passwordRules()...),
		validation.Field(&r.ConfirmPassword, validation.Required, validation.By(stringEquals(r.NewPassword))),
	)
}

// CreateBookRequest is the body of POST /books
type CreateBookRequest struct {
	Name            string `json:"name"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	PublicationYear string `json:"publicationYear"`
	Subject         string `json:"subject"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Author, validation.Required),
		validation.Field(&r.Publisher, validation.Required),
		validation.Field(&r.PublicationYear, validation.Required),
		validation.Field(&r.Subject, validation.Required),
	)
}

func (r CreateBookRequest) book() *domain.Book {
	return &domain.Book{
		Name:            r.Name,
		Author:          r.Author,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		Subject:         r.Subject,
	}
}

// UpdateBookRequest is the body of PUT /books/:id; omitted fields are left unchanged
type UpdateBookRequest struct {
	Name            *string `json:"name"`
	Author          *string `json:"author"`
	Publisher       *string `json:"publisher"`
	PublicationYear *string `json:"publicationYear"`
	Subject         *string `json:"subject"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Author, validation.NilOrNotEmpty),
		validation.Field(&r.Publisher, validation.NilOrNotEmpty),
		validation.Field(&r.PublicationYear, validation.NilOrNotEmpty),
		validation.Field(&r.Subject, validation.NilOrNotEmpty),
	)
}

func (r UpdateBookRequest) patch() domain.BookPatch {
	return domain.BookPatch{
		Name:            r.Name,
		Author:          r.Author,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		Subject:         r.Subject,
	}
}

// CreateBookingRequest is the body of POST /bookings
type CreateBookingRequest struct {
	BookID  uint     `json:"bookId"`
	EndDate string   `json:"endDate"`
	Price   *float64 `json:"price"`
}

func (r CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required),
		validation.Field(&r.EndDate, validation.Required, validation.By(isoDate)),
		validation.Field(&r.Price, validation.NotNil, validation.Min(0.0)),
	)
}

// UpdateProfileRequest is the body of PUT /user/profile
type UpdateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.FirstName, validation.NilOrNotEmpty),
		validation.Field(&r.LastName, validation.NilOrNotEmpty),
	)
}

func (r UpdateProfileRequest) patch() domain.UserPatch {
	return domain.UserPatch{Email: r.Email, FirstName: r.FirstName, LastName: r.LastName}
}

// AdminUpdateUserRequest is the body of PUT /user/:id
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

func (r AdminUpdateUserRequest) Validate() error {
	if err := r.UpdateProfileRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In(string(domain.RoleUser), string(domain.RoleAdmin))),
		validation.Field(&r.Status, validation.NilOrNotEmpty, validation.In(string(domain.StatusDisabled), string(domain.StatusEnabled))),
	)
}

func (r AdminUpdateUserRequest) patch() domain.UserPatch {
	p := r.UpdateProfileRequest.patch()
	if r.Role != nil {
		role := domain.Role(*r.Role)
		p.Role = &role
	}
	if r.Status != nil {
		status := domain.UserStatus(*r.Status)
		p.Status = &status
	}
	return p
}
