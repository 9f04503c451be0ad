package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/you/librarysvc/domain"
)

// libraryClaims is the JWT payload shared by access and refresh tokens
type libraryClaims struct {
	UserID uint        `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService.
// Access and refresh tokens are signed with different keys.
type JWTServiceImpl struct {
	accessKey       []byte
	refreshKey      []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *JWTServiceImpl {
	return &JWTServiceImpl{
		accessKey:       []byte(accessSecret),
		refreshKey:      []byte(refreshSecret),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		now:             time.Now,
	}
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID uint, role domain.Role) (string, error) {
	return j.sign(userID, role, j.accessKey, j.accessTokenTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(userID uint, role domain.Role) (string, error) {
	return j.sign(userID, role, j.refreshKey, j.refreshTokenTTL)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, j.accessKey)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, j.refreshKey)
}

func (j *JWTServiceImpl) sign(userID uint, role domain.Role, key []byte, ttl time.Duration) (string, error) {
	now := j.now()
	claims := libraryClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// validateToken validates a JWT token against key and returns its claims
func (j *JWTServiceImpl) validateToken(tokenString string, key []byte) (*domain.TokenClaims, error) {
	claims := &libraryClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, domain.ErrTokenMalformed
	default:
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	if claims.UserID == 0 || !claims.Role.Valid() || claims.IssuedAt == nil {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.TokenClaims{
		UserID:    claims.UserID,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
		ID:        claims.ID,
	}, nil
}
