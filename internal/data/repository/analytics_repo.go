package repository

import (
	"context"
	"fmt"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"go.uber.org/zap"
)

// DateRange bounds analytics queries on bookings.created_at; To is exclusive
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (d DateRange) where(column string) *whereBuilder {
	w := &whereBuilder{}
	if d.From != nil {
		w.add(column+" >= ?", *d.From)
	}
	if d.To != nil {
		w.add(column+" < ?", *d.To)
	}
	return w
}

type AnalyticsRepository interface {
	Summary(ctx context.Context, r DateRange) (*entity.AnalyticsSummary, error)
	RevenueTrend(ctx context.Context, r DateRange) ([]*entity.DailyRevenue, error)
	BookingsByServiceType(ctx context.Context, r DateRange) ([]*entity.ServiceTypeBreakdown, error)
	TopDrivers(ctx context.Context, r DateRange, limit int) ([]*entity.DriverRanking, error)
}

type analyticsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAnalyticsRepository(db database.PgxIface, log *zap.Logger) AnalyticsRepository {
	return &analyticsRepository{
		db:  db,
		log: log.With(zap.String("repository", "analytics")),
	}
}

func (r *analyticsRepository) Summary(ctx context.Context, dr DateRange) (*entity.AnalyticsSummary, error) {
	w := dr.where("created_at")
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status IN ('accepted', 'started')),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'cancelled'),
		       COUNT(*) FILTER (WHERE status = 'no_driver'),
		       COALESCE(SUM(fare_amount) FILTER (WHERE status = 'completed'), 0),
		       COALESCE(AVG(fare_amount) FILTER (WHERE status = 'completed'), 0)
		FROM bookings` + w.sql()

	var s entity.AnalyticsSummary
	err := r.db.QueryRow(ctx, query, w.args...).Scan(
		&s.TotalBookings, &s.PendingBookings, &s.ActiveBookings, &s.CompletedBookings,
		&s.CancelledBookings, &s.NoDriverBookings, &s.TotalRevenue, &s.AverageFare,
	)
	if err != nil {
		r.log.Error("Failed to compute booking summary", zap.Error(err))
		return nil, fmt.Errorf("booking summary: %w", err)
	}

	fleetQuery := `
		SELECT
			(SELECT COUNT(*) FROM drivers WHERE deleted_at IS NULL AND kyc_status = 'approved'),
			(SELECT COUNT(*) FROM drivers WHERE deleted_at IS NULL AND is_online = true),
			(SELECT COUNT(*) FROM vehicles WHERE deleted_at IS NULL AND status = 'active'),
			(SELECT COUNT(*) FROM drivers WHERE deleted_at IS NULL AND kyc_status = 'pending')
	`
	err = r.db.QueryRow(ctx, fleetQuery).Scan(&s.ActiveDrivers, &s.OnlineDrivers, &s.ActiveVehicles, &s.PendingKYC)
	if err != nil {
		r.log.Error("Failed to compute fleet summary", zap.Error(err))
		return nil, fmt.Errorf("fleet summary: %w", err)
	}

	return &s, nil
}

func (r *analyticsRepository) RevenueTrend(ctx context.Context, dr DateRange) ([]*entity.DailyRevenue, error) {
	w := dr.where("created_at")
	query := `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COALESCE(SUM(fare_amount) FILTER (WHERE status = 'completed'), 0)
		FROM bookings` + w.sql() + `
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to compute revenue trend", zap.Error(err))
		return nil, fmt.Errorf("revenue trend: %w", err)
	}
	defer rows.Close()

	var days []*entity.DailyRevenue
	for rows.Next() {
		var d entity.DailyRevenue
		if err := rows.Scan(&d.Day, &d.Bookings, &d.Completed, &d.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		days = append(days, &d)
	}

	return days, rows.Err()
}

func (r *analyticsRepository) BookingsByServiceType(ctx context.Context, dr DateRange) ([]*entity.ServiceTypeBreakdown, error) {
	w := dr.where("created_at")
	query := `
		SELECT service_type,
		       COUNT(*),
		       COALESCE(SUM(fare_amount) FILTER (WHERE status = 'completed'), 0)
		FROM bookings` + w.sql() + `
		GROUP BY service_type
		ORDER BY COUNT(*) DESC
	`

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to compute service type breakdown", zap.Error(err))
		return nil, fmt.Errorf("service type breakdown: %w", err)
	}
	defer rows.Close()

	var out []*entity.ServiceTypeBreakdown
	for rows.Next() {
		var b entity.ServiceTypeBreakdown
		if err := rows.Scan(&b.ServiceType, &b.Bookings, &b.Revenue); err != nil {
			return nil, fmt.Errorf("scan service type row: %w", err)
		}
		out = append(out, &b)
	}

	return out, rows.Err()
}

func (r *analyticsRepository) TopDrivers(ctx context.Context, dr DateRange, limit int) ([]*entity.DriverRanking, error) {
	w := dr.where("b.created_at")
	w.addRaw("b.status = 'completed'")
	w.addRaw("d.deleted_at IS NULL")
	w.args = append(w.args, limit)
	query := fmt.Sprintf(`
		SELECT d.id, d.full_name, d.rating, COUNT(b.id), COALESCE(SUM(b.fare_amount), 0)
		FROM bookings b
		JOIN drivers d ON d.id = b.driver_id%s
		GROUP BY d.id, d.full_name, d.rating
		ORDER BY COUNT(b.id) DESC, d.rating DESC
		LIMIT $%d
	`, w.sql(), len(w.args))

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to rank drivers", zap.Error(err))
		return nil, fmt.Errorf("rank drivers: %w", err)
	}
	defer rows.Close()

	var out []*entity.DriverRanking
	for rows.Next() {
		var d entity.DriverRanking
		if err := rows.Scan(&d.DriverID, &d.FullName, &d.Rating, &d.CompletedRides, &d.Earnings); err != nil {
			return nil, fmt.Errorf("scan driver ranking row: %w", err)
		}
		out = append(out, &d)
	}

	return out, rows.Err()
}
