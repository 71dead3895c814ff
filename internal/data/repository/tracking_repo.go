package repository

import (
	"context"
	"fmt"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TrackingRepository interface {
	// ActiveTrips returns accepted and started bookings that have a driver,
	// joined with the driver and (when assigned) the vehicle
	ActiveTrips(ctx context.Context) ([]*entity.ActiveTrip, error)
	OnlineDrivers(ctx context.Context) ([]*entity.Driver, error)
}

type trackingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTrackingRepository(db database.PgxIface, log *zap.Logger) TrackingRepository {
	return &trackingRepository{
		db:  db,
		log: log.With(zap.String("repository", "tracking")),
	}
}

func (r *trackingRepository) ActiveTrips(ctx context.Context) ([]*entity.ActiveTrip, error) {
	query := `
		SELECT ` + qualify(bookingColumns, "b") + `,
		       ` + qualify(driverColumns, "d") + `,
		       v.id, v.make, v.model, v.plate_number, v.color, v.vehicle_type
		FROM bookings b
		JOIN drivers d ON d.id = b.driver_id AND d.deleted_at IS NULL
		LEFT JOIN vehicles v ON v.id = b.vehicle_id AND v.deleted_at IS NULL
		WHERE b.status IN ('accepted', 'started')
		ORDER BY b.updated_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load active trips", zap.Error(err))
		return nil, fmt.Errorf("load active trips: %w", err)
	}
	defer rows.Close()

	var trips []*entity.ActiveTrip
	for rows.Next() {
		var (
			t             entity.ActiveTrip
			vehicleID     *uuid.UUID
			vMake, vModel *string
			plate         *string
			color         *string
			vehicleType   *entity.VehicleType
		)
		b, d := &t.Booking, &t.Driver
		err := rows.Scan(
			&b.ID, &b.BookingNumber, &b.CustomerID, &b.DriverID, &b.VehicleID, &b.ServiceType, &b.VehicleType,
			&b.PickupAddress, &b.PickupLat, &b.PickupLng, &b.DropoffAddress, &b.DropoffLat, &b.DropoffLng,
			&b.DistanceKm, &b.DurationMin, &b.FareAmount, &b.PaymentMethod, &b.PaymentStatus, &b.Status,
			&b.ScheduledAt, &b.StartTime, &b.EndTime, &b.StopCount, &b.CancellationReason, &b.CancelledAt, &b.Notes,
			&b.Version, &b.CreatedAt, &b.UpdatedAt,
			&d.ID, &d.UserID, &d.FullName, &d.Phone, &d.Email, &d.LicenseNumber, &d.LicenseExpiry, &d.Address,
			&d.KYCStatus, &d.KYCRemarks, &d.KYCReviewedAt, &d.KYCReviewedBy,
			&d.ProfilePictureURL, &d.LicenseDocumentURL, &d.IDProofURL, &d.AddressProofURL, &d.PoliceVerificationURL,
			&d.Rating, &d.TotalRides, &d.IsOnline, &d.CurrentLat, &d.CurrentLng, &d.LocationUpdatedAt,
			&d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
			&vehicleID, &vMake, &vModel, &plate, &color, &vehicleType,
		)
		if err != nil {
			r.log.Error("Failed to scan active trip row", zap.Error(err))
			return nil, fmt.Errorf("scan active trip row: %w", err)
		}
		if vehicleID != nil {
			t.Vehicle = &entity.Vehicle{Color: color}
			t.Vehicle.ID = *vehicleID
			t.Vehicle.Make = deref(vMake)
			t.Vehicle.Model = deref(vModel)
			t.Vehicle.PlateNumber = deref(plate)
			if vehicleType != nil {
				t.Vehicle.VehicleType = *vehicleType
			}
		}
		trips = append(trips, &t)
	}

	return trips, rows.Err()
}

func (r *trackingRepository) OnlineDrivers(ctx context.Context) ([]*entity.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE deleted_at IS NULL AND is_online = true
		  AND current_latitude IS NOT NULL AND current_longitude IS NOT NULL
		ORDER BY location_updated_at DESC NULLS LAST
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load online drivers", zap.Error(err))
		return nil, fmt.Errorf("load online drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*entity.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			r.log.Error("Failed to scan online driver row", zap.Error(err))
			return nil, fmt.Errorf("scan online driver row: %w", err)
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
