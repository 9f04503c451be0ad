package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Account lifecycle events
	UserRegistrationEvent     AuditEventType = "USER_REGISTERED"
	UserActivationEvent       AuditEventType = "USER_ACTIVATED"
	UserActivationFailedEvent AuditEventType = "USER_ACTIVATION_FAILED"
	PasswordResetEvent        AuditEventType = "PASSWORD_RESET"

	// OTP events
	OTPRequestEvent AuditEventType = "OTP_REQUESTED"
	OTPVerifyEvent  AuditEventType = "OTP_VERIFIED"
	OTPFailureEvent AuditEventType = "OTP_VERIFICATION_FAILED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"

	// Authorization events
	AccessDeniedEvent AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IPAddress string                 `json:"ip_address,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger defines operations for audit logging
type AuditLogger interface {
	// LogEvent logs a generic audit event
	LogEvent(ctx context.Context, event *AuditEvent) error

	LogUserRegistration(ctx context.Context, userID uint, email string) error
	LogUserActivation(ctx context.Context, userID uint, email string, err error) error
	LogOTPRequest(ctx context.Context, email string, purpose OTPPurpose) error
	LogOTPVerification(ctx context.Context, email string, purpose OTPPurpose, success bool) error
	LogUserLogin(ctx context.Context, userID uint, email string, success bool, errMsg string) error
	LogUserLogout(ctx context.Context, userID uint) error
	LogPasswordReset(ctx context.Context, userID uint, email string) error
	LogAccessDenied(ctx context.Context, userID uint, resource, reason string) error
}

// ClientContext represents client information extracted from an HTTP request
type ClientContext struct {
	IPAddress string
	UserAgent string
	RequestID string
}

type clientContextKey struct{}

// WithClientContext returns a copy of ctx carrying client information
func WithClientContext(ctx context.Context, cc *ClientContext) context.Context {
	return context.WithValue(ctx, clientContextKey{}, cc)
}

// ClientContextFrom extracts client information previously stored on ctx
func ClientContextFrom(ctx context.Context) *ClientContext {
	cc, _ := ctx.Value(clientContextKey{}).(*ClientContext)
	return cc
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithClientContext sets client context information
func (e *AuditEvent) WithClientContext(cc *ClientContext) *AuditEvent {
	if cc != nil {
		e.IPAddress = cc.IPAddress
		e.UserAgent = cc.UserAgent
		e.RequestID = cc.RequestID
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
