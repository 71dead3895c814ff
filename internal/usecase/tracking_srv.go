package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/response"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/maps"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

const (
	snapshotKey  = "tracking:snapshot"
	routeTimeout = 5 * time.Second
)

// SnapshotStore keeps the latest snapshot between polls
type SnapshotStore interface {
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest any) error
}

// Broadcaster pushes an encoded snapshot to live clients
type Broadcaster interface {
	Broadcast(msg []byte)
}

type TrackingService interface {
	// Latest returns the most recent snapshot, building one when no poll
	// has completed yet
	Latest(ctx context.Context) (*response.TrackingSnapshot, error)
	Refresh(ctx context.Context) (*response.TrackingSnapshot, error)
	// Run polls until ctx is done. Ticks never overlap.
	Run(ctx context.Context)
}

type trackingService struct {
	repo     repository.TrackingRepository
	routes   maps.RouteProvider
	store    SnapshotStore
	push     Broadcaster
	interval time.Duration
	ttl      time.Duration
	log      *zap.Logger

	mu   sync.RWMutex
	last *response.TrackingSnapshot
	now  func() time.Time
}

// NewTrackingService wires the poller. routes, store and push are optional.
func NewTrackingService(repo repository.TrackingRepository, routes maps.RouteProvider, store SnapshotStore, push Broadcaster, config utils.TrackingConfig, log *zap.Logger) TrackingService {
	interval := config.PollInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &trackingService{
		repo:     repo,
		routes:   routes,
		store:    store,
		push:     push,
		interval: interval,
		ttl:      config.SnapshotTTL,
		log:      log.With(zap.String("service", "tracking")),
		now:      time.Now,
	}
}

func (s *trackingService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Tracking poller started", zap.Duration("interval", s.interval))
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Tracking poller stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *trackingService) tick(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("Tracking poll failed, keeping previous snapshot", zap.Error(err))
	}
}

func (s *trackingService) Latest(ctx context.Context) (*response.TrackingSnapshot, error) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last != nil {
		return last, nil
	}

	if s.store != nil {
		var cached response.TrackingSnapshot
		err := s.store.GetJSON(ctx, snapshotKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("Failed to read cached snapshot", zap.Error(err))
		}
	}

	return s.Refresh(ctx)
}

// Refresh builds a snapshot, stores it and broadcasts it. On failure the
// previous snapshot stays in place.
func (s *trackingService) Refresh(ctx context.Context) (*response.TrackingSnapshot, error) {
	snapshot, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.last = snapshot
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SetJSON(ctx, snapshotKey, snapshot, s.ttl); err != nil {
			s.log.Warn("Failed to cache snapshot", zap.Error(err))
		}
	}

	if s.push != nil {
		msg, err := json.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		s.push.Broadcast(msg)
	}

	return snapshot, nil
}

func (s *trackingService) build(ctx context.Context) (*response.TrackingSnapshot, error) {
	trips, err := s.repo.ActiveTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active trips: %w", err)
	}
	online, err := s.repo.OnlineDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load online drivers: %w", err)
	}

	snapshot := &response.TrackingSnapshot{
		GeneratedAt:   s.now(),
		Trips:         make([]response.TrackedTrip, 0, len(trips)),
		OnlineDrivers: make([]response.DriverSummary, 0, len(online)),
	}

	for _, t := range trips {
		snapshot.Trips = append(snapshot.Trips, s.trackTrip(ctx, t))
	}
	for _, d := range online {
		snapshot.OnlineDrivers = append(snapshot.OnlineDrivers, *response.DriverToSummary(d))
	}

	return snapshot, nil
}

func driverPosition(d *entity.Driver) (maps.Location, bool) {
	if d.CurrentLat == nil || d.CurrentLng == nil {
		return maps.Location{}, false
	}
	return maps.Location{Latitude: *d.CurrentLat, Longitude: *d.CurrentLng}, true
}

func (s *trackingService) trackTrip(ctx context.Context, t *entity.ActiveTrip) response.TrackedTrip {
	b := &t.Booking
	pickup := maps.Location{Latitude: b.PickupLat, Longitude: b.PickupLng}
	dropoff := maps.Location{Latitude: b.DropoffLat, Longitude: b.DropoffLng}

	trip := response.TrackedTrip{
		BookingID:     b.ID.String(),
		BookingNumber: b.BookingNumber,
		Status:        b.Status,
		ServiceType:   b.ServiceType,
		Driver:        *response.DriverToSummary(&t.Driver),
		Vehicle:       response.VehicleToSummary(t.Vehicle),
		Markers: []response.MapMarker{
			{Kind: response.MarkerPickup, Label: b.PickupAddress, Position: pickup},
			{Kind: response.MarkerDropoff, Label: b.DropoffAddress, Position: dropoff},
		},
	}

	// heading to the pickup until the ride starts, then to the dropoff
	origin, destination := pickup, dropoff
	if pos, ok := driverPosition(&t.Driver); ok {
		trip.Markers = append(trip.Markers, response.MapMarker{
			Kind:     response.MarkerDriver,
			Label:    t.Driver.FullName,
			Position: pos,
		})
		origin = pos
		if b.Status == entity.BookingStatusAccepted {
			destination = pickup
		}
	}

	route := s.route(ctx, origin, destination)
	trip.Route = &response.TripRoute{
		DistanceKm:  utils.Round2(route.DistanceMeters / 1000),
		DurationMin: utils.Round2(float64(route.DurationSeconds) / 60),
		Polyline:    route.Polyline,
		Points:      route.Points,
		Approximate: route.Approximate,
	}

	return trip
}

func (s *trackingService) route(ctx context.Context, origin, destination maps.Location) *maps.Route {
	if s.routes == nil {
		return maps.StraightLine(origin, destination)
	}

	ctx, cancel := context.WithTimeout(ctx, routeTimeout)
	defer cancel()

	route, err := s.routes.Route(ctx, origin, destination)
	if err != nil {
		s.log.Debug("Route lookup failed, using straight line", zap.Error(err))
		return maps.StraightLine(origin, destination)
	}
	return route
}
