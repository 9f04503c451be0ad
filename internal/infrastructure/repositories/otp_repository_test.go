package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/librarysvc/domain"
)

func TestOTPRepositoryImpl_FindLatest(t *testing.T) {
	repo := NewOTPRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	older := &domain.OTP{Email: "a@example.com", Code: "111111", Purpose: domain.PurposeActivation, ExpiresAt: now.Add(10 * time.Minute), CreatedAt: now.Add(-time.Minute)}
	newer := &domain.OTP{Email: "a@example.com", Code: "222222", Purpose: domain.PurposeActivation, ExpiresAt: now.Add(10 * time.Minute), CreatedAt: now}
	reset := &domain.OTP{Email: "a@example.com", Code: "333333", Purpose: domain.PurposePasswordReset, ExpiresAt: now.Add(10 * time.Minute), CreatedAt: now.Add(time.Minute)}
	for _, o := range []*domain.OTP{older, newer, reset} {
		require.NoError(t, repo.Create(ctx, o))
		assert.NotZero(t, o.ID)
	}

	got, err := repo.FindLatest(ctx, "a@example.com", domain.PurposeActivation)
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)
	assert.Equal(t, domain.PurposeActivation, got.Purpose)

	got, err = repo.FindLatest(ctx, "a@example.com", domain.PurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, "333333", got.Code)

	_, err = repo.FindLatest(ctx, "b@example.com", domain.PurposeActivation)
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestOTPRepositoryImpl_Deletes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	live := &domain.OTP{Email: "a@example.com", Code: "111111", Purpose: domain.PurposeActivation, ExpiresAt: now.Add(time.Hour)}
	expired := &domain.OTP{Email: "b@example.com", Code: "222222", Purpose: domain.PurposeActivation, ExpiresAt: now.Add(-time.Hour)}
	reset := &domain.OTP{Email: "a@example.com", Code: "333333", Purpose: domain.PurposePasswordReset, ExpiresAt: now.Add(time.Hour)}
	for _, o := range []*domain.OTP{live, expired, reset} {
		require.NoError(t, repo.Create(ctx, o))
	}

	purged, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	require.NoError(t, repo.DeleteByEmail(ctx, "a@example.com", domain.PurposeActivation))
	_, err = repo.FindLatest(ctx, "a@example.com", domain.PurposeActivation)
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)

	// other purposes survive
	_, err = repo.FindLatest(ctx, "a@example.com", domain.PurposePasswordReset)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, reset.ID))
	var count int64
	require.NoError(t, db.Model(&DBOTP{}).Count(&count).Error)
	assert.Zero(t, count)
}
