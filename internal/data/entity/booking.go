package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusStarted   BookingStatus = "started"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoDriver  BookingStatus = "no_driver"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type ServiceType string

const (
	ServiceTypeCityRide   ServiceType = "city_ride"
	ServiceTypeRental     ServiceType = "rental"
	ServiceTypeAirport    ServiceType = "airport"
	ServiceTypeOutstation ServiceType = "outstation"
	ServiceTypeSharing    ServiceType = "sharing"
)

type Booking struct {
	BaseNoDelete
	BookingNumber      string        `db:"booking_number"`
	CustomerID         uuid.UUID     `db:"customer_id"`
	DriverID           *uuid.UUID    `db:"driver_id"`
	VehicleID          *uuid.UUID    `db:"vehicle_id"`
	ServiceType        ServiceType   `db:"service_type"`
	VehicleType        VehicleType   `db:"vehicle_type"`
	PickupAddress      string        `db:"pickup_address"`
	PickupLat          float64       `db:"pickup_latitude"`
	PickupLng          float64       `db:"pickup_longitude"`
	DropoffAddress     string        `db:"dropoff_address"`
	DropoffLat         float64       `db:"dropoff_latitude"`
	DropoffLng         float64       `db:"dropoff_longitude"`
	DistanceKm         float64       `db:"distance_km"`
	DurationMin        float64       `db:"duration_minutes"`
	FareAmount         float64       `db:"fare_amount"`
	PaymentMethod      string        `db:"payment_method"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	Status             BookingStatus `db:"status"`
	ScheduledAt        *time.Time    `db:"scheduled_at"`
	StartTime          *time.Time    `db:"start_time"`
	EndTime            *time.Time    `db:"end_time"`
	StopCount          int           `db:"stop_count"`
	CancellationReason *string       `db:"cancellation_reason"`
	CancelledAt        *time.Time    `db:"cancelled_at"`
	Notes              *string       `db:"notes"`
	Version            int           `db:"version"`
}

// BookingAuditLog is one admin action on a booking
type BookingAuditLog struct {
	BaseSimple
	BookingID  uuid.UUID      `db:"booking_id"`
	Action     string         `db:"action"`
	ActorID    *uuid.UUID     `db:"actor_id"`
	FromStatus *BookingStatus `db:"from_status"`
	ToStatus   *BookingStatus `db:"to_status"`
	Details    map[string]any `db:"details"`
}

const (
	AuditActionCreated       = "created"
	AuditActionAssigned      = "assigned"
	AuditActionStatusChanged = "status_changed"
	AuditActionFareUpdated   = "fare_updated"
	AuditActionPaymentUpdate = "payment_status_changed"
	AuditActionCancelled     = "cancelled"
)
