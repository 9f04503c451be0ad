package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/mocks"
)

// setupTestRedis starts a miniredis instance for the duration of the test
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// otpStore backs a MockOTPRepository with a slice so the OTP flow can be exercised end to end
type otpStore struct {
	mu     sync.Mutex
	nextID uint
	rows   []domain.OTP
}

func newOTPStoreRepo() (*otpStore, *mocks.MockOTPRepository) {
	store := &otpStore{}
	repo := mocks.NewMockOTPRepository()

	repo.CreateFunc = func(ctx context.Context, otp *domain.OTP) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.nextID++
		otp.ID = store.nextID
		store.rows = append(store.rows, *otp)
		return nil
	}
	repo.FindLatestFunc = func(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTP, error) {
		store.mu.Lock()
		defer store.mu.Unlock()
		for i := len(store.rows) - 1; i >= 0; i-- {
			r := store.rows[i]
			if r.Email == email && r.Purpose == purpose {
				return &r, nil
			}
		}
		return nil, domain.ErrOTPInvalid
	}
	repo.DeleteFunc = func(ctx context.Context, id uint) error {
		store.filter(func(o domain.OTP) bool { return o.ID != id })
		return nil
	}
	repo.DeleteByEmailFunc = func(ctx context.Context, email string, purpose domain.OTPPurpose) error {
		store.filter(func(o domain.OTP) bool { return o.Email != email || o.Purpose != purpose })
		return nil
	}
	repo.DeleteExpiredFunc = func(ctx context.Context, now time.Time) (int64, error) {
		before := store.len()
		store.filter(func(o domain.OTP) bool { return !o.ExpiresAt.Before(now) })
		return int64(before - store.len()), nil
	}
	return store, repo
}

func (s *otpStore) filter(keep func(domain.OTP) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.rows[:0]
	for _, r := range s.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	s.rows = out
}

func (s *otpStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *otpStore) latestCode(email string, purpose domain.OTPPurpose) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].Email == email && s.rows[i].Purpose == purpose {
			return s.rows[i].Code
		}
	}
	return ""
}

// createValidUser creates an enabled user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: "hashed_Secret1!",
		FirstName:    "Test",
		LastName:     "User",
		Role:         domain.RoleUser,
		Status:       domain.StatusEnabled,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createInactiveUser creates a user that has not been activated
func createInactiveUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.Status = domain.StatusDisabled
	return user
}

type authDeps struct {
	userRepo *mocks.MockUserRepository
	password *mocks.MockPasswordService
	tokens   *mocks.MockTokenService
	otp      *mocks.MockOTPService
	audit    *mocks.MockAuditLogger
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T) (*AuthServiceImpl, *authDeps) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	deps := &authDeps{
		userRepo: mocks.NewMockUserRepository(),
		password: mocks.NewMockPasswordService(),
		tokens:   mocks.NewMockTokenService(),
		otp:      mocks.NewMockOTPService(),
		audit:    mocks.NewMockAuditLogger(),
	}
	svc := NewAuthService(deps.userRepo, deps.password, deps.tokens, deps.otp, deps.audit, logger)
	return svc, deps
}
