package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingFilter struct {
	Status      *entity.BookingStatus
	ServiceType *entity.ServiceType
	DriverID    *uuid.UUID
	CustomerID  *uuid.UUID
	From        *time.Time
	To          *time.Time
	Search      string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	// Update writes every mutable column and bumps version. A non-nil
	// expectedVersion must match the stored version or ErrVersionConflict
	// is returned.
	Update(ctx context.Context, booking *entity.Booking, expectedVersion *int) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_number, customer_id, driver_id, vehicle_id, service_type, vehicle_type,
	pickup_address, pickup_latitude, pickup_longitude, dropoff_address, dropoff_latitude, dropoff_longitude,
	distance_km, duration_minutes, fare_amount, payment_method, payment_status, status,
	scheduled_at, start_time, end_time, stop_count, cancellation_reason, cancelled_at, notes,
	version, created_at, updated_at`

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.BookingNumber, &b.CustomerID, &b.DriverID, &b.VehicleID, &b.ServiceType, &b.VehicleType,
		&b.PickupAddress, &b.PickupLat, &b.PickupLng, &b.DropoffAddress, &b.DropoffLat, &b.DropoffLng,
		&b.DistanceKm, &b.DurationMin, &b.FareAmount, &b.PaymentMethod, &b.PaymentStatus, &b.Status,
		&b.ScheduledAt, &b.StartTime, &b.EndTime, &b.StopCount, &b.CancellationReason, &b.CancelledAt, &b.Notes,
		&b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		        $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
	`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.BookingNumber, b.CustomerID, b.DriverID, b.VehicleID, b.ServiceType, b.VehicleType,
		b.PickupAddress, b.PickupLat, b.PickupLng, b.DropoffAddress, b.DropoffLat, b.DropoffLng,
		b.DistanceKm, b.DurationMin, b.FareAmount, b.PaymentMethod, b.PaymentStatus, b.Status,
		b.ScheduledAt, b.StartTime, b.EndTime, b.StopCount, b.CancellationReason, b.CancelledAt, b.Notes,
		b.Version, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_number", b.BookingNumber),
			zap.String("customer_id", b.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", b.BookingNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) where(f BookingFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Status != nil {
		w.add("status = ?", *f.Status)
	}
	if f.ServiceType != nil {
		w.add("service_type = ?", *f.ServiceType)
	}
	if f.DriverID != nil {
		w.add("driver_id = ?", *f.DriverID)
	}
	if f.CustomerID != nil {
		w.add("customer_id = ?", *f.CustomerID)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}
	if f.Search != "" {
		w.add("(booking_number ILIKE ? OR pickup_address ILIKE ? OR dropoff_address ILIKE ?)", likePattern(f.Search))
	}
	return w
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	w := r.where(filter)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + w.sql() + ` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	w := r.where(filter)
	query := `SELECT COUNT(*) FROM bookings` + w.sql()

	var count int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *entity.Booking, expectedVersion *int) error {
	query := `
		UPDATE bookings
		SET driver_id = $2, vehicle_id = $3, fare_amount = $4, payment_status = $5, status = $6,
		    start_time = $7, end_time = $8, cancellation_reason = $9, cancelled_at = $10, notes = $11,
		    updated_at = $12, version = version + 1
		WHERE id = $1 AND ($13::int IS NULL OR version = $13)
		RETURNING version
	`

	var newVersion int
	err := r.db.QueryRow(ctx, query,
		b.ID, b.DriverID, b.VehicleID, b.FareAmount, b.PaymentStatus, b.Status,
		b.StartTime, b.EndTime, b.CancellationReason, b.CancelledAt, b.Notes,
		b.UpdatedAt, expectedVersion,
	).Scan(&newVersion)

	if errors.Is(err, pgx.ErrNoRows) {
		existing, findErr := r.FindByID(ctx, b.ID)
		if findErr != nil {
			return findErr
		}
		if existing == nil {
			return fmt.Errorf("booking %s: %w", b.ID.String(), ErrNotFound)
		}
		r.log.Warn("Booking version conflict",
			zap.String("booking_id", b.ID.String()),
			zap.Intp("expected_version", expectedVersion),
			zap.Int("current_version", existing.Version),
		)
		return fmt.Errorf("booking %s: %w", b.ID.String(), ErrVersionConflict)
	}
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", b.ID.String(), err)
	}

	b.Version = newVersion
	return nil
}
