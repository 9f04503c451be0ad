package notifications

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Sender delivers a composed message
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPServiceImpl implements domain.NotificationService over SMTP
type SMTPServiceImpl struct {
	sender Sender
	from   string
	logger logrus.FieldLogger
}

// NewSMTPService creates an SMTP mailer. With an empty host, mail is logged instead of sent.
func NewSMTPService(host string, port int, user, password, from string, logger logrus.FieldLogger) *SMTPServiceImpl {
	s := &SMTPServiceImpl{from: from, logger: logger}
	if host != "" {
		s.sender = gomail.NewDialer(host, port, user, password)
	}
	return s
}

// NewSMTPServiceWithSender creates a mailer that delivers through sender
func NewSMTPServiceWithSender(sender Sender, from string, logger logrus.FieldLogger) *SMTPServiceImpl {
	return &SMTPServiceImpl{sender: sender, from: from, logger: logger}
}

// SendEmail implements domain.NotificationService
func (s *SMTPServiceImpl) SendEmail(to, subject, textBody, htmlBody string) error {
	if s.sender == nil {
		s.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
			"body":    textBody,
		}).Info("smtp disabled, email not sent")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
