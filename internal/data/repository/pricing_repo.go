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

type PricingFilter struct {
	ServiceType *entity.ServiceType
	VehicleType *entity.VehicleType
	IsActive    *bool
}

func (f PricingFilter) where() *whereBuilder {
	w := &whereBuilder{}
	if f.ServiceType != nil {
		w.add("service_type = ?", *f.ServiceType)
	}
	if f.VehicleType != nil {
		w.add("vehicle_type = ?", *f.VehicleType)
	}
	if f.IsActive != nil {
		w.add("is_active = ?", *f.IsActive)
	}
	return w
}

type PricingRuleRepository interface {
	Create(ctx context.Context, rule *entity.PricingRule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PricingRule, error)
	FindAll(ctx context.Context, filter PricingFilter) ([]*entity.PricingRule, error)
	// FindActive returns the newest active rule for the pair, or nil
	FindActive(ctx context.Context, serviceType entity.ServiceType, vehicleType entity.VehicleType) (*entity.PricingRule, error)
	Update(ctx context.Context, rule *entity.PricingRule) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type pricingRuleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingRuleRepository(db database.PgxIface, log *zap.Logger) PricingRuleRepository {
	return &pricingRuleRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing_rule")),
	}
}

const pricingRuleColumns = `id, service_type, vehicle_type, base_fare, per_km_rate, per_minute_rate,
	minimum_fare, surge_multiplier, cancellation_fee, no_show_fee, waiting_charge_per_minute,
	free_waiting_minutes, is_active, created_at, updated_at`

func scanPricingRule(row rowScanner) (*entity.PricingRule, error) {
	var p entity.PricingRule
	err := row.Scan(
		&p.ID, &p.ServiceType, &p.VehicleType, &p.BaseFare, &p.PerKmRate, &p.PerMinuteRate,
		&p.MinimumFare, &p.SurgeMultiplier, &p.CancellationFee, &p.NoShowFee, &p.WaitingChargePerMinute,
		&p.FreeWaitingMinutes, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pricingRuleRepository) Create(ctx context.Context, p *entity.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (` + pricingRuleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.ServiceType, p.VehicleType, p.BaseFare, p.PerKmRate, p.PerMinuteRate,
		p.MinimumFare, p.SurgeMultiplier, p.CancellationFee, p.NoShowFee, p.WaitingChargePerMinute,
		p.FreeWaitingMinutes, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create pricing rule",
			zap.Error(err),
			zap.String("service_type", string(p.ServiceType)),
			zap.String("vehicle_type", string(p.VehicleType)),
		)
		return fmt.Errorf("create pricing rule %s/%s: %w", p.ServiceType, p.VehicleType, err)
	}

	return nil
}

func (r *pricingRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PricingRule, error) {
	query := `SELECT ` + pricingRuleColumns + ` FROM pricing_rules WHERE id = $1`

	rule, err := scanPricingRule(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pricing rule",
			zap.Error(err),
			zap.String("rule_id", id.String()),
		)
		return nil, fmt.Errorf("find pricing rule %s: %w", id.String(), err)
	}

	return rule, nil
}

func (r *pricingRuleRepository) FindAll(ctx context.Context, filter PricingFilter) ([]*entity.PricingRule, error) {
	w := filter.where()
	query := `SELECT ` + pricingRuleColumns + ` FROM pricing_rules` + w.sql() + ` ORDER BY service_type, vehicle_type, created_at DESC`

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list pricing rules", zap.Error(err))
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	defer rows.Close()

	var rules []*entity.PricingRule
	for rows.Next() {
		rule, err := scanPricingRule(rows)
		if err != nil {
			r.log.Error("Failed to scan pricing rule row", zap.Error(err))
			return nil, fmt.Errorf("scan pricing rule row: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *pricingRuleRepository) FindActive(ctx context.Context, serviceType entity.ServiceType, vehicleType entity.VehicleType) (*entity.PricingRule, error) {
	query := `
		SELECT ` + pricingRuleColumns + `
		FROM pricing_rules
		WHERE service_type = $1 AND vehicle_type = $2 AND is_active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`

	rule, err := scanPricingRule(r.db.QueryRow(ctx, query, serviceType, vehicleType))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active pricing rule",
			zap.Error(err),
			zap.String("service_type", string(serviceType)),
			zap.String("vehicle_type", string(vehicleType)),
		)
		return nil, fmt.Errorf("find active pricing rule %s/%s: %w", serviceType, vehicleType, err)
	}

	return rule, nil
}

func (r *pricingRuleRepository) Update(ctx context.Context, p *entity.PricingRule) error {
	query := `
		UPDATE pricing_rules
		SET service_type = $2, vehicle_type = $3, base_fare = $4, per_km_rate = $5, per_minute_rate = $6,
		    minimum_fare = $7, surge_multiplier = $8, cancellation_fee = $9, no_show_fee = $10,
		    waiting_charge_per_minute = $11, free_waiting_minutes = $12, is_active = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		p.ID, p.ServiceType, p.VehicleType, p.BaseFare, p.PerKmRate, p.PerMinuteRate,
		p.MinimumFare, p.SurgeMultiplier, p.CancellationFee, p.NoShowFee,
		p.WaitingChargePerMinute, p.FreeWaitingMinutes, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update pricing rule",
			zap.Error(err),
			zap.String("rule_id", p.ID.String()),
		)
		return fmt.Errorf("update pricing rule %s: %w", p.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pricing rule %s: %w", p.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *pricingRuleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE pricing_rules SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to deactivate pricing rule",
			zap.Error(err),
			zap.String("rule_id", id.String()),
		)
		return fmt.Errorf("deactivate pricing rule %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pricing rule %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
