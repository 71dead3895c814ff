package repository

import (
	"context"
	"fmt"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VehiclePerformanceRepository interface {
	Create(ctx context.Context, sample *entity.VehiclePerformance) error
	// FindByVehicleID returns samples oldest first
	FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*entity.VehiclePerformance, error)
}

type vehiclePerformanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehiclePerformanceRepository(db database.PgxIface, log *zap.Logger) VehiclePerformanceRepository {
	return &vehiclePerformanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle_performance")),
	}
}

func (r *vehiclePerformanceRepository) Create(ctx context.Context, p *entity.VehiclePerformance) error {
	query := `
		INSERT INTO vehicle_performance (id, vehicle_id, recorded_at, odometer_km, fuel_consumed_liters,
		                                 trips_count, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.VehicleID, p.RecordedAt, p.OdometerKm, p.FuelConsumedLiters,
		p.TripsCount, p.Notes, p.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create performance sample",
			zap.Error(err),
			zap.String("vehicle_id", p.VehicleID.String()),
		)
		return fmt.Errorf("create performance sample for vehicle %s: %w", p.VehicleID.String(), err)
	}

	return nil
}

func (r *vehiclePerformanceRepository) FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*entity.VehiclePerformance, error) {
	query := `
		SELECT id, vehicle_id, recorded_at, odometer_km, fuel_consumed_liters, trips_count, notes, created_at
		FROM vehicle_performance
		WHERE vehicle_id = $1
		ORDER BY recorded_at ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		r.log.Error("Failed to list performance samples",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return nil, fmt.Errorf("list performance samples for vehicle %s: %w", vehicleID.String(), err)
	}
	defer rows.Close()

	var samples []*entity.VehiclePerformance
	for rows.Next() {
		var p entity.VehiclePerformance
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.RecordedAt, &p.OdometerKm, &p.FuelConsumedLiters,
			&p.TripsCount, &p.Notes, &p.CreatedAt); err != nil {
			r.log.Error("Failed to scan performance row", zap.Error(err))
			return nil, fmt.Errorf("scan performance row: %w", err)
		}
		samples = append(samples, &p)
	}

	return samples, rows.Err()
}
