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

type VehicleFilter struct {
	Status      *entity.VehicleStatus
	VehicleType *entity.VehicleType
	DriverID    *uuid.UUID
	Unassigned  bool
	Search      string
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	FindAll(ctx context.Context, filter VehicleFilter, limit, offset int) ([]*entity.Vehicle, error)
	Count(ctx context.Context, filter VehicleFilter) (int64, error)
	// Update follows the same version rules as BookingRepository.Update
	Update(ctx context.Context, vehicle *entity.Vehicle, expectedVersion *int) error
	UpdateStats(ctx context.Context, id uuid.UUID, odometerKm float64, efficiencyKmpl *float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, make, model, year, plate_number, color, vehicle_type, status, capacity,
	driver_id, odometer_km, fuel_efficiency_kmpl, version, created_at, updated_at, deleted_at`

func scanVehicle(row rowScanner) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID, &v.Make, &v.Model, &v.Year, &v.PlateNumber, &v.Color, &v.VehicleType, &v.Status, &v.Capacity,
		&v.DriverID, &v.OdometerKm, &v.FuelEfficiencyKmpl, &v.Version, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		v.ID, v.Make, v.Model, v.Year, v.PlateNumber, v.Color, v.VehicleType, v.Status, v.Capacity,
		v.DriverID, v.OdometerKm, v.FuelEfficiencyKmpl, v.Version, v.CreatedAt, v.UpdatedAt, v.DeletedAt,
	)
	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("plate_number", v.PlateNumber),
		)
		return fmt.Errorf("create vehicle %s: %w", v.PlateNumber, err)
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND deleted_at IS NULL`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE UPPER(plate_number) = UPPER($1) AND deleted_at IS NULL`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, plate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by plate",
			zap.Error(err),
			zap.String("plate_number", plate),
		)
		return nil, fmt.Errorf("find vehicle by plate %s: %w", plate, err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) where(f VehicleFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addRaw("deleted_at IS NULL")
	if f.Status != nil {
		w.add("status = ?", *f.Status)
	}
	if f.VehicleType != nil {
		w.add("vehicle_type = ?", *f.VehicleType)
	}
	if f.DriverID != nil {
		w.add("driver_id = ?", *f.DriverID)
	}
	if f.Unassigned {
		w.addRaw("driver_id IS NULL")
	}
	if f.Search != "" {
		w.add("(plate_number ILIKE ? OR make ILIKE ? OR model ILIKE ?)", likePattern(f.Search))
	}
	return w
}

func (r *vehicleRepository) FindAll(ctx context.Context, filter VehicleFilter, limit, offset int) ([]*entity.Vehicle, error) {
	w := r.where(filter)
	query := `SELECT ` + vehicleColumns + ` FROM vehicles` + w.sql() + ` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list vehicles",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func (r *vehicleRepository) Count(ctx context.Context, filter VehicleFilter) (int64, error) {
	w := r.where(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`+w.sql(), w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count vehicles", zap.Error(err))
		return 0, fmt.Errorf("count vehicles: %w", err)
	}

	return count, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *entity.Vehicle, expectedVersion *int) error {
	query := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, plate_number = $5, color = $6, vehicle_type = $7,
		    status = $8, capacity = $9, driver_id = $10, updated_at = $11, version = version + 1
		WHERE id = $1 AND deleted_at IS NULL AND ($12::int IS NULL OR version = $12)
		RETURNING version
	`

	var newVersion int
	err := r.db.QueryRow(ctx, query,
		v.ID, v.Make, v.Model, v.Year, v.PlateNumber, v.Color, v.VehicleType,
		v.Status, v.Capacity, v.DriverID, v.UpdatedAt, expectedVersion,
	).Scan(&newVersion)

	if errors.Is(err, pgx.ErrNoRows) {
		existing, findErr := r.FindByID(ctx, v.ID)
		if findErr != nil {
			return findErr
		}
		if existing == nil {
			return fmt.Errorf("vehicle %s: %w", v.ID.String(), ErrNotFound)
		}
		r.log.Warn("Vehicle version conflict",
			zap.String("vehicle_id", v.ID.String()),
			zap.Intp("expected_version", expectedVersion),
			zap.Int("current_version", existing.Version),
		)
		return fmt.Errorf("vehicle %s: %w", v.ID.String(), ErrVersionConflict)
	}
	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", v.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", v.ID.String(), err)
	}

	v.Version = newVersion
	return nil
}

// UpdateStats records odometer and fuel economy without touching version,
// since these come from performance samples rather than admin edits
func (r *vehicleRepository) UpdateStats(ctx context.Context, id uuid.UUID, odometerKm float64, efficiencyKmpl *float64) error {
	query := `
		UPDATE vehicles
		SET odometer_km = GREATEST(odometer_km, $2),
		    fuel_efficiency_kmpl = COALESCE($3, fuel_efficiency_kmpl),
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, odometerKm, efficiencyKmpl)
	if err != nil {
		r.log.Error("Failed to update vehicle stats",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("update stats for vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vehicles SET deleted_at = NOW(), driver_id = NULL WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("delete vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Vehicle deleted", zap.String("vehicle_id", id.String()))
	return nil
}
