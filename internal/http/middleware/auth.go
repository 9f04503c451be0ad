package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/you/librarysvc/domain"
)

// AuthMW bundles the dependencies of the request guards
type AuthMW struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
	audit    domain.AuditLogger
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository, audit domain.AuditLogger) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
		audit:    audit,
	}
}

// WithJWT returns the bearer token guard
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.userRepo)
}

// Require returns the role guard for roles
func (mw *AuthMW) Require(roles ...domain.Role) gin.HandlerFunc {
	return RequireRoles(mw.audit, roles...)
}

// Admin is shorthand for Require(domain.RoleAdmin)
func (mw *AuthMW) Admin() gin.HandlerFunc {
	return mw.Require(domain.RoleAdmin)
}
