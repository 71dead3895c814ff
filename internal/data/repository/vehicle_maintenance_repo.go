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

type VehicleMaintenanceRepository interface {
	Create(ctx context.Context, entry *entity.VehicleMaintenanceLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleMaintenanceLog, error)
	FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*entity.VehicleMaintenanceLog, error)
	// FindDueBefore returns the latest log of each live vehicle whose next
	// service date falls before the cutoff
	FindDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.VehicleMaintenanceLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleMaintenanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleMaintenanceRepository(db database.PgxIface, log *zap.Logger) VehicleMaintenanceRepository {
	return &vehicleMaintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle_maintenance")),
	}
}

const maintenanceColumns = `id, vehicle_id, service_type, description, cost, odometer_km, service_date,
	next_service_date, next_service_odometer_km, service_provider, created_at`

func scanMaintenance(row rowScanner) (*entity.VehicleMaintenanceLog, error) {
	var m entity.VehicleMaintenanceLog
	err := row.Scan(
		&m.ID, &m.VehicleID, &m.ServiceType, &m.Description, &m.Cost, &m.OdometerKm, &m.ServiceDate,
		&m.NextServiceDate, &m.NextServiceOdometerKm, &m.ServiceProvider, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *vehicleMaintenanceRepository) Create(ctx context.Context, m *entity.VehicleMaintenanceLog) error {
	query := `
		INSERT INTO vehicle_maintenance_logs (` + maintenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID, m.VehicleID, m.ServiceType, m.Description, m.Cost, m.OdometerKm, m.ServiceDate,
		m.NextServiceDate, m.NextServiceOdometerKm, m.ServiceProvider, m.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create maintenance log",
			zap.Error(err),
			zap.String("vehicle_id", m.VehicleID.String()),
		)
		return fmt.Errorf("create maintenance log for vehicle %s: %w", m.VehicleID.String(), err)
	}

	return nil
}

func (r *vehicleMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleMaintenanceLog, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM vehicle_maintenance_logs WHERE id = $1`

	entry, err := scanMaintenance(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find maintenance log",
			zap.Error(err),
			zap.String("maintenance_id", id.String()),
		)
		return nil, fmt.Errorf("find maintenance log %s: %w", id.String(), err)
	}

	return entry, nil
}

func (r *vehicleMaintenanceRepository) list(ctx context.Context, query string, args ...any) ([]*entity.VehicleMaintenanceLog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.VehicleMaintenanceLog
	for rows.Next() {
		entry, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *vehicleMaintenanceRepository) FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*entity.VehicleMaintenanceLog, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM vehicle_maintenance_logs WHERE vehicle_id = $1 ORDER BY service_date DESC, created_at DESC`

	entries, err := r.list(ctx, query, vehicleID)
	if err != nil {
		r.log.Error("Failed to list maintenance logs",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return nil, fmt.Errorf("list maintenance logs for vehicle %s: %w", vehicleID.String(), err)
	}

	return entries, nil
}

func (r *vehicleMaintenanceRepository) FindDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.VehicleMaintenanceLog, error) {
	query := `
		SELECT * FROM (
			SELECT DISTINCT ON (m.vehicle_id)
			       m.id, m.vehicle_id, m.service_type, m.description, m.cost, m.odometer_km, m.service_date,
			       m.next_service_date, m.next_service_odometer_km, m.service_provider, m.created_at
			FROM vehicle_maintenance_logs m
			JOIN vehicles v ON v.id = m.vehicle_id AND v.deleted_at IS NULL
			ORDER BY m.vehicle_id, m.service_date DESC, m.created_at DESC
		) latest
		WHERE next_service_date IS NOT NULL AND next_service_date <= $1
	`

	entries, err := r.list(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to list due maintenance", zap.Error(err), zap.Time("cutoff", cutoff))
		return nil, fmt.Errorf("list due maintenance: %w", err)
	}

	return entries, nil
}

func (r *vehicleMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vehicle_maintenance_logs WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete maintenance log",
			zap.Error(err),
			zap.String("maintenance_id", id.String()),
		)
		return fmt.Errorf("delete maintenance log %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance log %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
