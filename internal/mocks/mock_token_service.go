package mocks

import (
	"fmt"

	"github.com/you/librarysvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, role domain.Role) (string, error)
	GenerateRefreshTokenFunc func(userID uint, role domain.Role) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token
func (m *MockTokenService) GenerateAccessToken(userID uint, role domain.Role) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	return fmt.Sprintf("access_%d_%s", userID, role), nil
}

// GenerateRefreshToken generates a refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint, role domain.Role) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role)
	}
	return fmt.Sprintf("refresh_%d_%s", userID, role), nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
