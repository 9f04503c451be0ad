package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/librarysvc/domain"
)

const otpLength = 6

// OTPServiceImpl implements domain.OTPService. Codes live in the database,
// the resend throttle lives in Redis.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
	onSent          func(purpose domain.OTPPurpose)
	now             func() time.Time
}

type OTPConfig struct {
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) *OTPServiceImpl {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
		onSent:          func(domain.OTPPurpose) {},
		now:             time.Now,
	}
}

// OnSent registers a callback run after each code is emailed
func (s *OTPServiceImpl) OnSent(fn func(purpose domain.OTPPurpose)) {
	s.onSent = fn
}

func resendKey(email string, purpose domain.OTPPurpose) string {
	return fmt.Sprintf("otp:res:%s:%s", purpose, email)
}

// RequestCode implements domain.OTPService
func (s *OTPServiceImpl) RequestCode(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	key := resendKey(email, purpose)

	// SetNX doubles as the throttle check and the throttle mark
	ok, err := s.redisClient.SetNX(ctx, key, 1, s.config.ResendWindow).Result()
	if err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}
	if !ok {
		return domain.ErrOTPResendLimit
	}

	code, err := generateSecureCode(otpLength)
	if err != nil {
		s.redisClient.Del(ctx, key)
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	now := s.now().UTC()
	otp := &domain.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(s.config.TTL),
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		s.redisClient.Del(ctx, key)
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	text := fmt.Sprintf("Your OTP code is: %s. It expires in %d minutes.", code, int(s.config.TTL.Minutes()))
	html := fmt.Sprintf("<p>Your OTP code is: <strong>%s</strong></p><p>It expires in %d minutes.</p>", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendEmail(email, "Your OTP Code", text, html); err != nil {
		// Clean up so the caller may retry at once
		s.otpRepo.Delete(ctx, otp.ID)
		s.redisClient.Del(ctx, key)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	s.onSent(purpose)
	return nil
}

// VerifyCode implements domain.OTPService. Only the newest code for (email, purpose) is accepted.
func (s *OTPServiceImpl) VerifyCode(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	otp, err := s.otpRepo.FindLatest(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrOTPInvalid) {
			return domain.ErrOTPInvalid
		}
		return fmt.Errorf("failed to load OTP: %w", err)
	}

	if otp.Expired(s.now()) || otp.Code != code {
		return domain.ErrOTPInvalid
	}
	return nil
}

// Consume implements domain.OTPService
func (s *OTPServiceImpl) Consume(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if err := s.otpRepo.DeleteByEmail(ctx, email, purpose); err != nil {
		return fmt.Errorf("failed to consume OTP: %w", err)
	}
	return nil
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, email string, purpose domain.OTPPurpose) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(email, purpose)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// PurgeExpired implements domain.OTPService
func (s *OTPServiceImpl) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.otpRepo.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired OTPs: %w", err)
	}
	return n, nil
}

// generateSecureCode generates a cryptographically secure numeric code
func generateSecureCode(length int) (string, error) {
	digits := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
