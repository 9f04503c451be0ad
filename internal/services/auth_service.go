package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/you/librarysvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	audit       domain.AuditLogger
	logger      logrus.FieldLogger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	audit domain.AuditLogger,
	logger logrus.FieldLogger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		audit:       audit,
		logger:      logger,
	}
}

// Register implements domain.AuthService. The account starts disabled and an
// activation code is mailed; a mail failure does not undo the registration.
func (s *AuthServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hashedPassword,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleUser,
		Status:       domain.StatusDisabled,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var conflict *domain.FieldConflictError
		if errors.As(err, &conflict) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.audit.LogUserRegistration(ctx, user.ID, user.Email)

	if err := s.otpSvc.RequestCode(ctx, user.Email, domain.PurposeActivation); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("activation code not sent")
	} else {
		s.audit.LogOTPRequest(ctx, user.Email, domain.PurposeActivation)
	}

	return user, nil
}

// Activate implements domain.AuthService
func (s *AuthServiceImpl) Activate(ctx context.Context, email, code string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.otpSvc.VerifyCode(ctx, email, code, domain.PurposeActivation); err != nil {
		s.audit.LogUserActivation(ctx, user.ID, email, err)
		return nil, err
	}

	user.Status = domain.StatusEnabled
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	if err := s.otpSvc.Consume(ctx, email, domain.PurposeActivation); err != nil {
		return nil, err
	}

	s.audit.LogUserActivation(ctx, user.ID, email, nil)
	return user, nil
}

// Login implements domain.AuthService. A disabled account is rejected before the password is checked.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.LogUserLogin(ctx, 0, email, false, domain.ErrInvalidCredentials.Error())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsEnabled() {
		s.audit.LogUserLogin(ctx, user.ID, email, false, domain.ErrUserInactive.Error())
		return nil, domain.ErrUserInactive
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.LogUserLogin(ctx, user.ID, email, false, domain.ErrInvalidCredentials.Error())
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.audit.LogUserLogin(ctx, user.ID, email, true, "")
	return result, nil
}

// RefreshToken implements domain.AuthService. Every call rotates the refresh token.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsEnabled() {
		return nil, domain.ErrUnauthorized
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) issueTokens(user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RequestOTP implements domain.AuthService
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if err := s.otpSvc.RequestCode(ctx, email, purpose); err != nil {
		return err
	}
	s.audit.LogOTPRequest(ctx, email, purpose)
	return nil
}

// VerifyOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	err := s.otpSvc.VerifyCode(ctx, email, code, purpose)
	s.audit.LogOTPVerification(ctx, email, purpose, err == nil)
	return err
}

// ForgotPassword implements domain.AuthService. Unknown emails succeed silently.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.logger.WithField("email", email).Debug("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	return s.RequestOTP(ctx, email, domain.PurposePasswordReset)
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.otpSvc.VerifyCode(ctx, email, code, domain.PurposePasswordReset); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrOTPInvalid
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.otpSvc.Consume(ctx, email, domain.PurposePasswordReset); err != nil {
		return err
	}

	s.audit.LogPasswordReset(ctx, user.ID, email)
	return nil
}
