package mocks

import (
	"context"
	"sync"

	"github.com/you/librarysvc/domain"
)

// MockAuditLogger implements domain.AuditLogger and records the event types it sees
type MockAuditLogger struct {
	mu     sync.Mutex
	Events []domain.AuditEventType
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

func (m *MockAuditLogger) record(t domain.AuditEventType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, t)
	return nil
}

// Has reports whether an event of type t was logged
func (m *MockAuditLogger) Has(t domain.AuditEventType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e == t {
			return true
		}
	}
	return false
}

func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	return m.record(event.EventType)
}

func (m *MockAuditLogger) LogUserRegistration(ctx context.Context, userID uint, email string) error {
	return m.record(domain.UserRegistrationEvent)
}

func (m *MockAuditLogger) LogUserActivation(ctx context.Context, userID uint, email string, err error) error {
	if err != nil {
		return m.record(domain.UserActivationFailedEvent)
	}
	return m.record(domain.UserActivationEvent)
}

func (m *MockAuditLogger) LogOTPRequest(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	return m.record(domain.OTPRequestEvent)
}

func (m *MockAuditLogger) LogOTPVerification(ctx context.Context, email string, purpose domain.OTPPurpose, success bool) error {
	if !success {
		return m.record(domain.OTPFailureEvent)
	}
	return m.record(domain.OTPVerifyEvent)
}

func (m *MockAuditLogger) LogUserLogin(ctx context.Context, userID uint, email string, success bool, errMsg string) error {
	if !success {
		return m.record(domain.UserLoginFailureEvent)
	}
	return m.record(domain.UserLoginEvent)
}

func (m *MockAuditLogger) LogUserLogout(ctx context.Context, userID uint) error {
	return m.record(domain.UserLogoutEvent)
}

func (m *MockAuditLogger) LogPasswordReset(ctx context.Context, userID uint, email string) error {
	return m.record(domain.PasswordResetEvent)
}

func (m *MockAuditLogger) LogAccessDenied(ctx context.Context, userID uint, resource, reason string) error {
	return m.record(domain.AccessDeniedEvent)
}

var _ domain.AuditLogger = (*MockAuditLogger)(nil)
