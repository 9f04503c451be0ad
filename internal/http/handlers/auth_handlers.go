package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/http/respond"
)

const (
	RefreshCookieName = "jid"
	RefreshCookiePath = "/api/auth/refresh-token"
)

// CookieConfig controls the refresh token cookie
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandlers handles the /auth endpoints
type AuthHandlers struct {
	authSvc domain.AuthService
	audit   domain.AuditLogger
	cookie  CookieConfig
	logger  logrus.FieldLogger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, audit domain.AuditLogger, cookie CookieConfig, logger logrus.FieldLogger) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		audit:   audit,
		cookie:  cookie,
		logger:  logger,
	}
}

func (h *AuthHandlers) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookieName, token, int(h.cookie.MaxAge.Seconds()), RefreshCookiePath, "", h.cookie.Secure, true)
}

func (h *AuthHandlers) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookieName, "", -1, RefreshCookiePath, "", h.cookie.Secure, true)
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			respond.Error(c, http.StatusConflict, "Email already in use", nil)
			return
		}
		writeError(c, h.logger, err)
		return
	}

	respond.Created(c, "User registered successfully. Check your email for the activation code.", gin.H{"user": user})
}

// Activate enables an account with its activation code
func (h *AuthHandlers) Activate(c *gin.Context) {
	var req ActivateRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.Activate(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "Account activated successfully", gin.H{"user": user})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		case errors.Is(err, domain.ErrUserInactive):
			respond.Error(c, http.StatusForbidden, "Account is not activated", nil)
		default:
			writeError(c, h.logger, err)
		}
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	respond.Success(c, "Login successful", gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken,
	})
}

// Refresh rotates the refresh cookie and issues a new access token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, _ := c.Cookie(RefreshCookieName)

	result, err := h.authSvc.RefreshToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.clearRefreshCookie(c)
			respond.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
			return
		}
		writeError(c, h.logger, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	respond.Success(c, "Token refreshed successfully", gin.H{"accessToken": result.AccessToken})
}

// Logout clears the refresh cookie; access tokens stay valid until they expire
func (h *AuthHandlers) Logout(c *gin.Context) {
	_ = h.audit.LogUserLogout(c.Request.Context(), principal(c).ID)
	h.clearRefreshCookie(c)
	respond.Success(c, "Logged out successfully", nil)
}

// RequestOTP mails a fresh code for the requested purpose
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req OTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authSvc.RequestOTP(c.Request.Context(), req.Email, req.purpose()); err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "OTP sent successfully", nil)
}

// VerifyOTP checks a code without consuming it
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.Code, req.purpose()); err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "OTP verified", gin.H{"verified": true})
}

// ForgotPassword answers the same way whether or not the email is registered
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, domain.ErrOTPResendLimit) {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "If the email is registered, a reset code has been sent", nil)
}

// ResetPassword sets a new password with a PASSWORD_RESET code
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "Password reset successful", nil)
}
