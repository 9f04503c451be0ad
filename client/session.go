package client

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/librarysvc/domain"
)

// Session is the caller-owned authentication state passed to every authenticated call.
// The claims are decoded without verification; the server remains the authority.
type Session struct {
	AccessToken string
	UserID      uint
	Role        domain.Role
}

type sessionClaims struct {
	UserID uint        `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewSession decodes the identity carried by an access token
func NewSession(accessToken string) (*Session, error) {
	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, errors.New("access token carries no identity")
	}
	return &Session{AccessToken: accessToken, UserID: claims.UserID, Role: claims.Role}, nil
}

// IsAdmin reports whether the session belongs to an administrator
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role.IsAdmin()
}

// Authenticated reports whether the session holds a token
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}
