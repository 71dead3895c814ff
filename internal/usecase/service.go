package usecase

import (
	"fleet-admin/internal/data/repository"
	"fleet-admin/pkg/maps"
	"fleet-admin/pkg/sms"
	"fleet-admin/pkg/storage"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

// Deps are the optional outside services. Nil storage or routes degrade
// gracefully; SMS must be set.
type Deps struct {
	Storage   storage.Provider
	SMS       sms.Sender
	Routes    maps.RouteProvider
	Snapshots SnapshotStore
	Broadcast Broadcaster
}

type Service struct {
	Auth      AuthService
	User      UserService
	Booking   BookingService
	Driver    DriverService
	Vehicle   VehicleService
	Pricing   PricingService
	Analytics AnalyticsService
	Tracking  TrackingService
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		User:      NewUserService(repo.User, repo.Session, log),
		Booking:   NewBookingService(repo, log),
		Driver:    NewDriverService(repo, deps.Storage, deps.SMS, config, log),
		Vehicle:   NewVehicleService(repo, deps.Storage, config, log),
		Pricing:   NewPricingService(repo, log),
		Analytics: NewAnalyticsService(repo.Analytics, log),
		Tracking:  NewTrackingService(repo.Tracking, deps.Routes, deps.Snapshots, deps.Broadcast, config.Tracking, log),
	}
}
