package repository

import (
	"context"
	"errors"
	"fmt"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	FindValidOTP(ctx context.Context, phone, otpCode string, purpose entity.OTPPurpose) (*entity.OTP, error)
	MarkAsUsed(ctx context.Context, otpID uuid.UUID) error
	// InvalidateForPhone burns every outstanding code so only the newest one works
	InvalidateForPhone(ctx context.Context, phone string, purpose entity.OTPPurpose) error
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otps (id, phone, otp_code, purpose, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.Phone,
		otp.OTPCode,
		otp.Purpose,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("phone", otp.Phone),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("create OTP for %s: %w", otp.Phone, err)
	}

	return nil
}

func (r *otpRepository) FindValidOTP(ctx context.Context, phone, otpCode string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	query := `
		SELECT id, phone, otp_code, purpose, expires_at, is_used, created_at
		FROM otps
		WHERE phone = $1
		  AND otp_code = $2
		  AND purpose = $3
		  AND is_used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, phone, otpCode, purpose).Scan(
		&otp.ID,
		&otp.Phone,
		&otp.OTPCode,
		&otp.Purpose,
		&otp.ExpiresAt,
		&otp.IsUsed,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid OTP",
			zap.Error(err),
			zap.String("phone", phone),
			zap.String("purpose", string(purpose)),
		)
		return nil, fmt.Errorf("find valid OTP for %s: %w", phone, err)
	}

	return &otp, nil
}

func (r *otpRepository) MarkAsUsed(ctx context.Context, otpID uuid.UUID) error {
	query := `
		UPDATE otps
		SET is_used = true
		WHERE id = $1 AND is_used = false
	`

	result, err := r.db.Exec(ctx, query, otpID)
	if err != nil {
		r.log.Error("Failed to mark OTP as used",
			zap.Error(err),
			zap.String("otp_id", otpID.String()),
		)
		return fmt.Errorf("mark OTP %s as used: %w", otpID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("OTP %s: %w", otpID.String(), ErrNotFound)
	}

	return nil
}

func (r *otpRepository) InvalidateForPhone(ctx context.Context, phone string, purpose entity.OTPPurpose) error {
	query := `UPDATE otps SET is_used = true WHERE phone = $1 AND purpose = $2 AND is_used = false`

	if _, err := r.db.Exec(ctx, query, phone, purpose); err != nil {
		r.log.Error("Failed to invalidate OTPs",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return fmt.Errorf("invalidate OTPs for %s: %w", phone, err)
	}

	return nil
}
