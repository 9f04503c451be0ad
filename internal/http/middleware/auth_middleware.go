package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/http/respond"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

// AuthMiddleware validates the bearer access token and loads its user.
// The role is taken from the stored user, not from the token.
func AuthMiddleware(tokenSvc domain.TokenService, userRepo domain.UserRepository) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respond.Abort(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			respond.Abort(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			respond.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				respond.Abort(c, http.StatusUnauthorized, "User not found")
				return
			}
			_ = c.Error(err)
			respond.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserRoleKey, user.Role)
		c.Next()
	})
}

// RequireRoles rejects callers whose role is not in roles. It must run after AuthMiddleware.
func RequireRoles(audit domain.AuditLogger, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := PrincipalFrom(c)
		if !ok || !caller.Role.In(roles...) {
			if audit != nil {
				_ = audit.LogAccessDenied(c.Request.Context(), caller.ID, c.FullPath(), "role not permitted")
			}
			respond.Abort(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the authenticated caller set by AuthMiddleware
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	id, okID := c.Get(UserIDKey)
	role, okRole := c.Get(UserRoleKey)
	if !okID || !okRole {
		return domain.Principal{}, false
	}
	uid, okID := id.(uint)
	r, okRole := role.(domain.Role)
	if !okID || !okRole {
		return domain.Principal{}, false
	}
	return domain.Principal{ID: uid, Role: r}, true
}
