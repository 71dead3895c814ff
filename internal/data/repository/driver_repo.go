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

type DriverFilter struct {
	KYCStatus *entity.KYCStatus
	IsOnline  *bool
	Search    string
}

type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	FindByPhone(ctx context.Context, phone string) (*entity.Driver, error)
	FindAll(ctx context.Context, filter DriverFilter, limit, offset int) ([]*entity.Driver, error)
	Count(ctx context.Context, filter DriverFilter) (int64, error)
	Update(ctx context.Context, driver *entity.Driver) error
	UpdateKYC(ctx context.Context, id uuid.UUID, status entity.KYCStatus, remarks *string, reviewer *uuid.UUID) error
	UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64, online bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Performance(ctx context.Context, id uuid.UUID) (*entity.DriverPerformance, error)
}

type driverRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDriverRepository(db database.PgxIface, log *zap.Logger) DriverRepository {
	return &driverRepository{
		db:  db,
		log: log.With(zap.String("repository", "driver")),
	}
}

const driverColumns = `id, user_id, full_name, phone, email, license_number, license_expiry, address,
	kyc_status, kyc_remarks, kyc_reviewed_at, kyc_reviewed_by,
	profile_picture_url, license_document_url, id_proof_url, address_proof_url, police_verification_url,
	rating, total_rides, is_online, current_latitude, current_longitude, location_updated_at,
	created_at, updated_at, deleted_at`

func scanDriver(row rowScanner) (*entity.Driver, error) {
	var d entity.Driver
	err := row.Scan(
		&d.ID, &d.UserID, &d.FullName, &d.Phone, &d.Email, &d.LicenseNumber, &d.LicenseExpiry, &d.Address,
		&d.KYCStatus, &d.KYCRemarks, &d.KYCReviewedAt, &d.KYCReviewedBy,
		&d.ProfilePictureURL, &d.LicenseDocumentURL, &d.IDProofURL, &d.AddressProofURL, &d.PoliceVerificationURL,
		&d.Rating, &d.TotalRides, &d.IsOnline, &d.CurrentLat, &d.CurrentLng, &d.LocationUpdatedAt,
		&d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepository) Create(ctx context.Context, d *entity.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err := r.db.Exec(ctx, query,
		d.ID, d.UserID, d.FullName, d.Phone, d.Email, d.LicenseNumber, d.LicenseExpiry, d.Address,
		d.KYCStatus, d.KYCRemarks, d.KYCReviewedAt, d.KYCReviewedBy,
		d.ProfilePictureURL, d.LicenseDocumentURL, d.IDProofURL, d.AddressProofURL, d.PoliceVerificationURL,
		d.Rating, d.TotalRides, d.IsOnline, d.CurrentLat, d.CurrentLng, d.LocationUpdatedAt,
		d.CreatedAt, d.UpdatedAt, d.DeletedAt,
	)
	if err != nil {
		r.log.Error("Failed to create driver",
			zap.Error(err),
			zap.String("phone", d.Phone),
		)
		return fmt.Errorf("create driver %s: %w", d.Phone, err)
	}

	return nil
}

func (r *driverRepository) findOne(ctx context.Context, cond string, arg any) (*entity.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE ` + cond + ` AND deleted_at IS NULL`

	driver, err := scanDriver(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return driver, err
}

func (r *driverRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	driver, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		r.log.Error("Failed to find driver by ID",
			zap.Error(err),
			zap.String("driver_id", id.String()),
		)
		return nil, fmt.Errorf("find driver by ID %s: %w", id.String(), err)
	}
	return driver, nil
}

func (r *driverRepository) FindByPhone(ctx context.Context, phone string) (*entity.Driver, error) {
	driver, err := r.findOne(ctx, "phone = $1", phone)
	if err != nil {
		r.log.Error("Failed to find driver by phone",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return nil, fmt.Errorf("find driver by phone %s: %w", phone, err)
	}
	return driver, nil
}

func (r *driverRepository) where(f DriverFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addRaw("deleted_at IS NULL")
	if f.KYCStatus != nil {
		w.add("kyc_status = ?", *f.KYCStatus)
	}
	if f.IsOnline != nil {
		w.add("is_online = ?", *f.IsOnline)
	}
	if f.Search != "" {
		w.add("(full_name ILIKE ? OR phone ILIKE ? OR license_number ILIKE ?)", likePattern(f.Search))
	}
	return w
}

func (r *driverRepository) FindAll(ctx context.Context, filter DriverFilter, limit, offset int) ([]*entity.Driver, error) {
	w := r.where(filter)
	query := `SELECT ` + driverColumns + ` FROM drivers` + w.sql() + ` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list drivers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*entity.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			r.log.Error("Failed to scan driver row", zap.Error(err))
			return nil, fmt.Errorf("scan driver row: %w", err)
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

func (r *driverRepository) Count(ctx context.Context, filter DriverFilter) (int64, error) {
	w := r.where(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drivers`+w.sql(), w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count drivers", zap.Error(err))
		return 0, fmt.Errorf("count drivers: %w", err)
	}

	return count, nil
}

func (r *driverRepository) Update(ctx context.Context, d *entity.Driver) error {
	query := `
		UPDATE drivers
		SET full_name = $2, phone = $3, email = $4, license_number = $5, license_expiry = $6,
		    address = $7, kyc_status = $8, kyc_remarks = $9, profile_picture_url = $10,
		    license_document_url = $11, id_proof_url = $12, address_proof_url = $13,
		    police_verification_url = $14, updated_at = $15
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		d.ID, d.FullName, d.Phone, d.Email, d.LicenseNumber, d.LicenseExpiry,
		d.Address, d.KYCStatus, d.KYCRemarks, d.ProfilePictureURL,
		d.LicenseDocumentURL, d.IDProofURL, d.AddressProofURL,
		d.PoliceVerificationURL, d.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update driver",
			zap.Error(err),
			zap.String("driver_id", d.ID.String()),
		)
		return fmt.Errorf("update driver %s: %w", d.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("driver %s: %w", d.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *driverRepository) UpdateKYC(ctx context.Context, id uuid.UUID, status entity.KYCStatus, remarks *string, reviewer *uuid.UUID) error {
	query := `
		UPDATE drivers
		SET kyc_status = $2, kyc_remarks = $3, kyc_reviewed_by = $4,
		    kyc_reviewed_at = CASE WHEN $4::uuid IS NULL THEN kyc_reviewed_at ELSE NOW() END,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, status, remarks, reviewer)
	if err != nil {
		r.log.Error("Failed to update driver KYC",
			zap.Error(err),
			zap.String("driver_id", id.String()),
			zap.String("kyc_status", string(status)),
		)
		return fmt.Errorf("update KYC for driver %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("driver %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *driverRepository) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64, online bool) error {
	query := `
		UPDATE drivers
		SET current_latitude = $2, current_longitude = $3, is_online = $4, location_updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, lat, lng, online, time.Now())
	if err != nil {
		r.log.Error("Failed to update driver location",
			zap.Error(err),
			zap.String("driver_id", id.String()),
		)
		return fmt.Errorf("update location for driver %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("driver %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE drivers SET deleted_at = NOW(), is_online = false WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete driver",
			zap.Error(err),
			zap.String("driver_id", id.String()),
		)
		return fmt.Errorf("delete driver %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("driver %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Driver deleted", zap.String("driver_id", id.String()))
	return nil
}

func (r *driverRepository) Performance(ctx context.Context, id uuid.UUID) (*entity.DriverPerformance, error) {
	query := `
		SELECT $1::uuid,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'cancelled'),
		       COALESCE(SUM(fare_amount) FILTER (WHERE status = 'completed'), 0),
		       COALESCE(SUM(distance_km) FILTER (WHERE status = 'completed'), 0)
		FROM bookings
		WHERE driver_id = $1
	`

	var p entity.DriverPerformance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.DriverID, &p.TotalBookings, &p.CompletedRides, &p.CancelledRides, &p.TotalEarnings, &p.TotalDistanceKm,
	)
	if err != nil {
		r.log.Error("Failed to compute driver performance",
			zap.Error(err),
			zap.String("driver_id", id.String()),
		)
		return nil, fmt.Errorf("driver performance %s: %w", id.String(), err)
	}

	return &p, nil
}
