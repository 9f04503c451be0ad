package mocks

import "github.com/you/librarysvc/domain"

// SentEmail records one SendEmail call
type SentEmail struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendEmailFunc func(to, subject, textBody, htmlBody string) error
	Sent          []SentEmail
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendEmail records the message, then delegates to SendEmailFunc if set
func (m *MockNotificationService) SendEmail(to, subject, textBody, htmlBody string) error {
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, TextBody: textBody, HTMLBody: htmlBody})
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, textBody, htmlBody)
	}
	// Default behavior: success (no actual email sent in tests)
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
