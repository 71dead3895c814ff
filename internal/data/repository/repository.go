package repository

import (
	"fleet-admin/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User               UserRepository
	Session            SessionRepository
	OTP                OTPRepository
	Customer           CustomerRepository
	Booking            BookingRepository
	BookingAudit       BookingAuditRepository
	Driver             DriverRepository
	Vehicle            VehicleRepository
	VehicleDocument    VehicleDocumentRepository
	VehicleMaintenance VehicleMaintenanceRepository
	VehiclePerformance VehiclePerformanceRepository
	VehicleAlert       VehicleAlertRepository
	PricingRule        PricingRuleRepository
	ZonePricing        ZonePricingRepository
	Analytics          AnalyticsRepository
	Tracking           TrackingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:               NewUserRepository(db, log),
		Session:            NewSessionRepository(db, log),
		OTP:                NewOTPRepository(db, log),
		Customer:           NewCustomerRepository(db, log),
		Booking:            NewBookingRepository(db, log),
		BookingAudit:       NewBookingAuditRepository(db, log),
		Driver:             NewDriverRepository(db, log),
		Vehicle:            NewVehicleRepository(db, log),
		VehicleDocument:    NewVehicleDocumentRepository(db, log),
		VehicleMaintenance: NewVehicleMaintenanceRepository(db, log),
		VehiclePerformance: NewVehiclePerformanceRepository(db, log),
		VehicleAlert:       NewVehicleAlertRepository(db, log),
		PricingRule:        NewPricingRuleRepository(db, log),
		ZonePricing:        NewZonePricingRepository(db, log),
		Analytics:          NewAnalyticsRepository(db, log),
		Tracking:           NewTrackingRepository(db, log),
	}
}
