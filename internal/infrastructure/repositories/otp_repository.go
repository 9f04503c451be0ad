package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/librarysvc/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOTP is the persisted form of a one-time passcode
type DBOTP struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index:idx_otp_email_purpose;size:255;not null"`
	Code      string    `gorm:"size:6;not null"`
	Purpose   string    `gorm:"index:idx_otp_email_purpose;size:32;not null"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOTP) TableName() string {
	return "otps"
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) *OTPRepositoryImpl {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *domain.OTP) error {
	row := &DBOTP{
		Email:     otp.Email,
		Code:      otp.Code,
		Purpose:   string(otp.Purpose),
		ExpiresAt: otp.ExpiresAt,
		CreatedAt: otp.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	otp.ID = row.ID
	otp.CreatedAt = row.CreatedAt
	return nil
}

// FindLatest implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindLatest(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTP, error) {
	var row DBOTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND purpose = ?", email, string(purpose)).
		Order("created_at DESC").Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, err
	}
	return &domain.OTP{
		ID:        row.ID,
		Email:     row.Email,
		Code:      row.Code,
		Purpose:   domain.OTPPurpose(row.Purpose),
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Delete implements domain.OTPRepository
func (r *OTPRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBOTP{}, id).Error
}

// DeleteByEmail implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByEmail(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND purpose = ?", email, string(purpose)).
		Delete(&DBOTP{}).Error
}

// DeleteExpired implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&DBOTP{})
	return res.RowsAffected, res.Error
}
