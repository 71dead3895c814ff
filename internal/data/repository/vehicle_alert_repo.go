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

type VehicleAlertRepository interface {
	Create(ctx context.Context, alert *entity.VehicleAlert) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleAlert, error)
	FindByVehicleID(ctx context.Context, vehicleID uuid.UUID, unresolvedOnly bool) ([]*entity.VehicleAlert, error)
	// ExistsUnresolved reports whether an open alert already covers the
	// (vehicle, type, reference) triple
	ExistsUnresolved(ctx context.Context, vehicleID uuid.UUID, alertType entity.AlertType, referenceID uuid.UUID) (bool, error)
	Resolve(ctx context.Context, id uuid.UUID, resolvedBy *uuid.UUID) error
}

type vehicleAlertRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleAlertRepository(db database.PgxIface, log *zap.Logger) VehicleAlertRepository {
	return &vehicleAlertRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle_alert")),
	}
}

const alertColumns = `id, vehicle_id, alert_type, priority, title, message, due_date, reference_id,
	is_resolved, resolved_at, resolved_by, created_at, updated_at`

func scanAlert(row rowScanner) (*entity.VehicleAlert, error) {
	var a entity.VehicleAlert
	err := row.Scan(
		&a.ID, &a.VehicleID, &a.AlertType, &a.Priority, &a.Title, &a.Message, &a.DueDate, &a.ReferenceID,
		&a.IsResolved, &a.ResolvedAt, &a.ResolvedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *vehicleAlertRepository) Create(ctx context.Context, a *entity.VehicleAlert) error {
	query := `
		INSERT INTO vehicle_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		a.ID, a.VehicleID, a.AlertType, a.Priority, a.Title, a.Message, a.DueDate, a.ReferenceID,
		a.IsResolved, a.ResolvedAt, a.ResolvedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create vehicle alert",
			zap.Error(err),
			zap.String("vehicle_id", a.VehicleID.String()),
			zap.String("alert_type", string(a.AlertType)),
		)
		return fmt.Errorf("create alert for vehicle %s: %w", a.VehicleID.String(), err)
	}

	return nil
}

func (r *vehicleAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM vehicle_alerts WHERE id = $1`

	alert, err := scanAlert(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle alert",
			zap.Error(err),
			zap.String("alert_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle alert %s: %w", id.String(), err)
	}

	return alert, nil
}

func (r *vehicleAlertRepository) FindByVehicleID(ctx context.Context, vehicleID uuid.UUID, unresolvedOnly bool) ([]*entity.VehicleAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM vehicle_alerts
		WHERE vehicle_id = $1 AND (NOT $2 OR is_resolved = false)
		ORDER BY is_resolved ASC,
		         CASE priority WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END,
		         created_at DESC
	`

	rows, err := r.db.Query(ctx, query, vehicleID, unresolvedOnly)
	if err != nil {
		r.log.Error("Failed to list vehicle alerts",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return nil, fmt.Errorf("list alerts for vehicle %s: %w", vehicleID.String(), err)
	}
	defer rows.Close()

	var alerts []*entity.VehicleAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			r.log.Error("Failed to scan alert row", zap.Error(err))
			return nil, fmt.Errorf("scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

func (r *vehicleAlertRepository) ExistsUnresolved(ctx context.Context, vehicleID uuid.UUID, alertType entity.AlertType, referenceID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM vehicle_alerts
			WHERE vehicle_id = $1 AND alert_type = $2 AND reference_id = $3 AND is_resolved = false
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, vehicleID, alertType, referenceID).Scan(&exists); err != nil {
		r.log.Error("Failed to check open alert",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return false, fmt.Errorf("check open alert for vehicle %s: %w", vehicleID.String(), err)
	}

	return exists, nil
}

func (r *vehicleAlertRepository) Resolve(ctx context.Context, id uuid.UUID, resolvedBy *uuid.UUID) error {
	query := `
		UPDATE vehicle_alerts
		SET is_resolved = true, resolved_at = NOW(), resolved_by = $2, updated_at = NOW()
		WHERE id = $1 AND is_resolved = false
	`

	result, err := r.db.Exec(ctx, query, id, resolvedBy)
	if err != nil {
		r.log.Error("Failed to resolve alert",
			zap.Error(err),
			zap.String("alert_id", id.String()),
		)
		return fmt.Errorf("resolve alert %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("open alert %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
