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

type ZonePricingRepository interface {
	Create(ctx context.Context, zone *entity.ZonePricing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ZonePricing, error)
	FindAll(ctx context.Context, filter PricingFilter) ([]*entity.ZonePricing, error)
	FindActive(ctx context.Context, serviceType entity.ServiceType, vehicleType entity.VehicleType, fromZone, toZone string) (*entity.ZonePricing, error)
	Update(ctx context.Context, zone *entity.ZonePricing) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type zonePricingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewZonePricingRepository(db database.PgxIface, log *zap.Logger) ZonePricingRepository {
	return &zonePricingRepository{
		db:  db,
		log: log.With(zap.String("repository", "zone_pricing")),
	}
}

const zonePricingColumns = `id, service_type, vehicle_type, from_zone, to_zone, fixed_fare, base_fare,
	per_km_rate, is_active, created_at, updated_at`

func scanZonePricing(row rowScanner) (*entity.ZonePricing, error) {
	var z entity.ZonePricing
	err := row.Scan(
		&z.ID, &z.ServiceType, &z.VehicleType, &z.FromZone, &z.ToZone, &z.FixedFare, &z.BaseFare,
		&z.PerKmRate, &z.IsActive, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *zonePricingRepository) Create(ctx context.Context, z *entity.ZonePricing) error {
	query := `
		INSERT INTO zone_pricing (` + zonePricingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		z.ID, z.ServiceType, z.VehicleType, z.FromZone, z.ToZone, z.FixedFare, z.BaseFare,
		z.PerKmRate, z.IsActive, z.CreatedAt, z.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create zone pricing",
			zap.Error(err),
			zap.String("from_zone", z.FromZone),
			zap.String("to_zone", z.ToZone),
		)
		return fmt.Errorf("create zone pricing %s -> %s: %w", z.FromZone, z.ToZone, err)
	}

	return nil
}

func (r *zonePricingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ZonePricing, error) {
	query := `SELECT ` + zonePricingColumns + ` FROM zone_pricing WHERE id = $1`

	zone, err := scanZonePricing(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find zone pricing",
			zap.Error(err),
			zap.String("zone_id", id.String()),
		)
		return nil, fmt.Errorf("find zone pricing %s: %w", id.String(), err)
	}

	return zone, nil
}

func (r *zonePricingRepository) FindAll(ctx context.Context, filter PricingFilter) ([]*entity.ZonePricing, error) {
	w := filter.where()
	query := `SELECT ` + zonePricingColumns + ` FROM zone_pricing` + w.sql() + ` ORDER BY from_zone, to_zone`

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list zone pricing", zap.Error(err))
		return nil, fmt.Errorf("list zone pricing: %w", err)
	}
	defer rows.Close()

	var zones []*entity.ZonePricing
	for rows.Next() {
		zone, err := scanZonePricing(rows)
		if err != nil {
			r.log.Error("Failed to scan zone pricing row", zap.Error(err))
			return nil, fmt.Errorf("scan zone pricing row: %w", err)
		}
		zones = append(zones, zone)
	}

	return zones, rows.Err()
}

func (r *zonePricingRepository) FindActive(ctx context.Context, serviceType entity.ServiceType, vehicleType entity.VehicleType, fromZone, toZone string) (*entity.ZonePricing, error) {
	query := `
		SELECT ` + zonePricingColumns + `
		FROM zone_pricing
		WHERE service_type = $1 AND vehicle_type = $2
		  AND LOWER(from_zone) = LOWER($3) AND LOWER(to_zone) = LOWER($4)
		  AND is_active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`

	zone, err := scanZonePricing(r.db.QueryRow(ctx, query, serviceType, vehicleType, fromZone, toZone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active zone pricing",
			zap.Error(err),
			zap.String("from_zone", fromZone),
			zap.String("to_zone", toZone),
		)
		return nil, fmt.Errorf("find zone pricing %s -> %s: %w", fromZone, toZone, err)
	}

	return zone, nil
}

func (r *zonePricingRepository) Update(ctx context.Context, z *entity.ZonePricing) error {
	query := `
		UPDATE zone_pricing
		SET service_type = $2, vehicle_type = $3, from_zone = $4, to_zone = $5, fixed_fare = $6,
		    base_fare = $7, per_km_rate = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		z.ID, z.ServiceType, z.VehicleType, z.FromZone, z.ToZone, z.FixedFare,
		z.BaseFare, z.PerKmRate, z.IsActive, z.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update zone pricing",
			zap.Error(err),
			zap.String("zone_id", z.ID.String()),
		)
		return fmt.Errorf("update zone pricing %s: %w", z.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("zone pricing %s: %w", z.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *zonePricingRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE zone_pricing SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to deactivate zone pricing",
			zap.Error(err),
			zap.String("zone_id", id.String()),
		)
		return fmt.Errorf("deactivate zone pricing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("zone pricing %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
