package domain

import "time"

// User represents a library member or administrator
type User struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsEnabled reports whether the account has been activated
func (u *User) IsEnabled() bool {
	return u.Status == StatusEnabled
}

// UserStatus is the activation state of an account
type UserStatus string

const (
	StatusDisabled UserStatus = "DISABLED"
	StatusEnabled  UserStatus = "ENABLED"
)

// Valid reports whether s is a known status
func (s UserStatus) Valid() bool {
	return s == StatusDisabled || s == StatusEnabled
}

// OTPPurpose scopes a one-time code to a single flow
type OTPPurpose string

const (
	PurposeActivation    OTPPurpose = "ACTIVATION"
	PurposePasswordReset OTPPurpose = "PASSWORD_RESET"
)

// Valid reports whether p is a known purpose
func (p OTPPurpose) Valid() bool {
	return p == PurposeActivation || p == PurposePasswordReset
}

// OTP is a persisted one-time passcode
type OTP struct {
	ID        uint
	Email     string
	Code      string
	Purpose   OTPPurpose
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at now
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// Book is a catalog entry
type Book struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Author          string    `json:"author"`
	Publisher       string    `json:"publisher"`
	PublicationYear string    `json:"publicationYear"`
	Subject         string    `json:"subject"`
	CreatedBy       uint      `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookPatch carries the fields of a partial book update; nil means unchanged
type BookPatch struct {
	Name            *string
	Author          *string
	Publisher       *string
	PublicationYear *string
	Subject         *string
}

// Empty reports whether the patch changes nothing
func (p BookPatch) Empty() bool {
	return p.Name == nil && p.Author == nil && p.Publisher == nil &&
		p.PublicationYear == nil && p.Subject == nil
}

// Booking reserves a book for a user until EndDate
type Booking struct {
	ID        string    `json:"id"`
	BookID    uint      `json:"bookId"`
	UserID    uint      `json:"userId"`
	EndDate   time.Time `json:"endDate"`
	Price     float64   `json:"price"`
	Book      *Book     `json:"book,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch carries the fields of a partial user update; nil means unchanged.
// Role and Status are only honoured on the admin path.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *Role
	Status    *UserStatus
}

// Empty reports whether the patch changes nothing
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.Role == nil && p.Status == nil
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// Principal is the authenticated caller attached to a request
type Principal struct {
	ID   uint
	Role Role
}

// CanAccess reports whether the principal may act on a resource owned by ownerID
func (p Principal) CanAccess(ownerID uint) bool {
	return p.Role.IsAdmin() || p.ID == ownerID
}
