package repository

import (
	"context"
	"fmt"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingAuditRepository interface {
	Create(ctx context.Context, entry *entity.BookingAuditLog) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAuditLog, error)
}

type bookingAuditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingAuditRepository(db database.PgxIface, log *zap.Logger) BookingAuditRepository {
	return &bookingAuditRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_audit")),
	}
}

func (r *bookingAuditRepository) Create(ctx context.Context, e *entity.BookingAuditLog) error {
	query := `
		INSERT INTO booking_audit_logs (id, booking_id, action, actor_id, from_status, to_status, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		e.ID, e.BookingID, e.Action, e.ActorID, e.FromStatus, e.ToStatus, e.Details, e.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create audit entry",
			zap.Error(err),
			zap.String("booking_id", e.BookingID.String()),
			zap.String("action", e.Action),
		)
		return fmt.Errorf("create audit entry for booking %s: %w", e.BookingID.String(), err)
	}

	return nil
}

func (r *bookingAuditRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAuditLog, error) {
	query := `
		SELECT id, booking_id, action, actor_id, from_status, to_status, details, created_at
		FROM booking_audit_logs
		WHERE booking_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to list audit entries",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("list audit entries for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.BookingAuditLog
	for rows.Next() {
		var e entity.BookingAuditLog
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Action, &e.ActorID, &e.FromStatus, &e.ToStatus, &e.Details, &e.CreatedAt); err != nil {
			r.log.Error("Failed to scan audit row", zap.Error(err))
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
