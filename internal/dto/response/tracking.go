package response

import (
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/maps"
)

type MarkerKind string

const (
	MarkerDriver  MarkerKind = "driver"
	MarkerPickup  MarkerKind = "pickup"
	MarkerDropoff MarkerKind = "dropoff"
)

type MapMarker struct {
	Kind     MarkerKind    `json:"kind"`
	Label    string        `json:"label"`
	Position maps.Location `json:"position"`
}

type TripRoute struct {
	DistanceKm  float64         `json:"distance_km"`
	DurationMin float64         `json:"duration_minutes"`
	Polyline    string          `json:"polyline,omitempty"`
	Points      []maps.Location `json:"points"`
	Approximate bool            `json:"approximate"`
}

// TrackedTrip is one in-progress booking on the live map
type TrackedTrip struct {
	BookingID     string               `json:"booking_id"`
	BookingNumber string               `json:"booking_number"`
	Status        entity.BookingStatus `json:"status"`
	ServiceType   entity.ServiceType   `json:"service_type"`
	Driver        DriverSummary        `json:"driver"`
	Vehicle       *VehicleSummary      `json:"vehicle,omitempty"`
	Markers       []MapMarker          `json:"markers"`
	Route         *TripRoute           `json:"route,omitempty"`
}

type TrackingSnapshot struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	Trips         []TrackedTrip   `json:"trips"`
	OnlineDrivers []DriverSummary `json:"online_drivers"`
}
