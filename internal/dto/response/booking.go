package response

import (
	"time"

	"fleet-admin/internal/data/entity"
)

type BookingResponse struct {
	ID                 string               `json:"id"`
	BookingNumber      string               `json:"booking_number"`
	CustomerID         string               `json:"customer_id"`
	DriverID           *string              `json:"driver_id"`
	VehicleID          *string              `json:"vehicle_id"`
	ServiceType        entity.ServiceType   `json:"service_type"`
	VehicleType        entity.VehicleType   `json:"vehicle_type"`
	PickupAddress      string               `json:"pickup_address"`
	PickupLat          float64              `json:"pickup_latitude"`
	PickupLng          float64              `json:"pickup_longitude"`
	DropoffAddress     string               `json:"dropoff_address"`
	DropoffLat         float64              `json:"dropoff_latitude"`
	DropoffLng         float64              `json:"dropoff_longitude"`
	DistanceKm         float64              `json:"distance_km"`
	DurationMin        float64              `json:"duration_minutes"`
	FareAmount         float64              `json:"fare_amount"`
	PaymentMethod      string               `json:"payment_method"`
	PaymentStatus      entity.PaymentStatus `json:"payment_status"`
	Status             entity.BookingStatus `json:"status"`
	ScheduledAt        *time.Time           `json:"scheduled_at,omitempty"`
	StartTime          *time.Time           `json:"start_time,omitempty"`
	EndTime            *time.Time           `json:"end_time,omitempty"`
	StopCount          int                  `json:"stop_count"`
	CancellationReason *string              `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	Version            int                  `json:"version"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type CustomerResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
}

type AuditLogResponse struct {
	ID         string                `json:"id"`
	Action     string                `json:"action"`
	ActorID    *string               `json:"actor_id,omitempty"`
	FromStatus *entity.BookingStatus `json:"from_status,omitempty"`
	ToStatus   *entity.BookingStatus `json:"to_status,omitempty"`
	Details    map[string]any        `json:"details,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// BookingDetailResponse backs the booking detail tabs
type BookingDetailResponse struct {
	BookingResponse
	Customer           *CustomerResponse      `json:"customer"`
	Driver             *DriverSummary         `json:"driver"`
	Vehicle            *VehicleSummary        `json:"vehicle"`
	AuditTrail         []AuditLogResponse     `json:"audit_trail"`
	AllowedTransitions []entity.BookingStatus `json:"allowed_transitions"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID.String(),
		BookingNumber:      b.BookingNumber,
		CustomerID:         b.CustomerID.String(),
		ServiceType:        b.ServiceType,
		VehicleType:        b.VehicleType,
		PickupAddress:      b.PickupAddress,
		PickupLat:          b.PickupLat,
		PickupLng:          b.PickupLng,
		DropoffAddress:     b.DropoffAddress,
		DropoffLat:         b.DropoffLat,
		DropoffLng:         b.DropoffLng,
		DistanceKm:         b.DistanceKm,
		DurationMin:        b.DurationMin,
		FareAmount:         b.FareAmount,
		PaymentMethod:      b.PaymentMethod,
		PaymentStatus:      b.PaymentStatus,
		Status:             b.Status,
		ScheduledAt:        b.ScheduledAt,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		StopCount:          b.StopCount,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		Notes:              b.Notes,
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	resp.DriverID = idString(b.DriverID)
	resp.VehicleID = idString(b.VehicleID)
	return resp
}

func CustomerToResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:       c.ID.String(),
		FullName: c.FullName,
		Phone:    c.Phone,
		Email:    c.Email,
	}
}

func AuditLogToResponse(e *entity.BookingAuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         e.ID.String(),
		Action:     e.Action,
		ActorID:    idString(e.ActorID),
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}
