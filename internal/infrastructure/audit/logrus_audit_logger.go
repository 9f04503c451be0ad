package audit

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/you/librarysvc/domain"
)

// LogrusAuditLogger implements domain.AuditLogger by writing one structured line per event
type LogrusAuditLogger struct {
	logger logrus.FieldLogger
}

// NewLogrusAuditLogger creates an audit logger on top of logger
func NewLogrusAuditLogger(logger logrus.FieldLogger) *LogrusAuditLogger {
	return &LogrusAuditLogger{logger: logger.WithField("component", "audit")}
}

// LogEvent implements domain.AuditLogger
func (a *LogrusAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	event.WithClientContext(domain.ClientContextFrom(ctx))

	fields := logrus.Fields{
		"event":   string(event.EventType),
		"success": event.Success,
		"at":      event.Timestamp,
	}
	if event.UserID != 0 {
		fields["user_id"] = event.UserID
	}
	if event.Email != "" {
		fields["email"] = event.Email
	}
	if event.IPAddress != "" {
		fields["ip"] = event.IPAddress
	}
	if event.UserAgent != "" {
		fields["user_agent"] = event.UserAgent
	}
	if event.RequestID != "" {
		fields["request_id"] = event.RequestID
	}
	if event.ErrorMsg != "" {
		fields["error"] = event.ErrorMsg
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := a.logger.WithFields(fields)
	if event.Success {
		entry.Info("audit")
	} else {
		entry.Warn("audit")
	}
	return nil
}

func (a *LogrusAuditLogger) LogUserRegistration(ctx context.Context, userID uint, email string) error {
	return a.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, userID).WithEmail(email))
}

func (a *LogrusAuditLogger) LogUserActivation(ctx context.Context, userID uint, email string, err error) error {
	if err != nil {
		return a.LogEvent(ctx, domain.NewAuditEvent(domain.UserActivationFailedEvent, userID).WithEmail(email).WithError(err))
	}
	return a.LogEvent(ctx, domain.NewAuditEvent(domain.UserActivationEvent, userID).WithEmail(email))
}

func (a *LogrusAuditLogger) LogOTPRequest(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	return a.LogEvent(ctx, domain.NewAuditEvent(domain.OTPRequestEvent, 0).
		WithEmail(email).
		WithMetadata("purpose", string(purpose)))
}

func (a *LogrusAuditLogger) LogOTPVerification(ctx context.Context, email string, purpose domain.OTPPurpose, success bool) error {
	event := domain.NewAuditEvent(domain.OTPVerifyEvent, 0).
		WithEmail(email).
		WithMetadata("purpose", string(purpose))
	if !success {
		event.EventType = domain.OTPFailureEvent
		event.WithError(domain.ErrOTPInvalid)
	}
	return a.LogEvent(ctx, event)
}

func (a *LogrusAuditLogger) LogUserLogin(ctx context.Context, userID uint, email string, success bool, errMsg string) error {
	event := domain.NewAuditEvent(domain.UserLoginEvent, userID).WithEmail(email)
	if !success {
		event.EventType = domain.UserLoginFailureEvent
		event.Success = false
		event.ErrorMsg = errMsg
	}
	return a.LogEvent(ctx, event)
}

func (a *LogrusAuditLogger) LogUserLogout(ctx context.Context, userID uint) error {
	return a.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, userID))
}

func (a *LogrusAuditLogger) LogPasswordReset(ctx context.Context, userID uint, email string) error {
	return a.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, userID).WithEmail(email))
}

func (a *LogrusAuditLogger) LogAccessDenied(ctx context.Context, userID uint, resource, reason string) error {
	event := domain.NewAuditEvent(domain.AccessDeniedEvent, userID).
		WithMetadata("resource", resource)
	event.Success = false
	event.ErrorMsg = reason
	return a.LogEvent(ctx, event)
}
