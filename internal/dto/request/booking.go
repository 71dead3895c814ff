package request

type BookingListRequest struct {
	PaginatedRequest
	Status      string `json:"status" validate:"omitempty,oneof=pending accepted started completed cancelled no_driver"`
	ServiceType string `json:"service_type" validate:"omitempty,oneof=city_ride rental airport outstation sharing"`
	DriverID    string `json:"driver_id" validate:"omitempty,uuid"`
	CustomerID  string `json:"customer_id" validate:"omitempty,uuid"`
	From        string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Search      string `json:"search" validate:"omitempty,max=100"`
}

// CreateBookingRequest is an admin-entered booking. Distance and duration
// fall back to a straight-line estimate between the pins when omitted.
type CreateBookingRequest struct {
	CustomerID     string   `json:"customer_id" validate:"required,uuid"`
	ServiceType    string   `json:"service_type" validate:"required,oneof=city_ride rental airport outstation sharing"`
	VehicleType    string   `json:"vehicle_type" validate:"required,oneof=hatchback sedan suv auto bike luxury"`
	PickupAddress  string   `json:"pickup_address" validate:"required,notblank,max=500"`
	PickupLat      float64  `json:"pickup_latitude" validate:"latitude"`
	PickupLng      float64  `json:"pickup_longitude" validate:"longitude"`
	DropoffAddress string   `json:"dropoff_address" validate:"required,notblank,max=500"`
	DropoffLat     float64  `json:"dropoff_latitude" validate:"latitude"`
	DropoffLng     float64  `json:"dropoff_longitude" validate:"longitude"`
	DistanceKm     *float64 `json:"distance_km,omitempty" validate:"omitempty,gte=0"`
	DurationMin    *float64 `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	PaymentMethod  string   `json:"payment_method" validate:"required,oneof=cash card wallet upi"`
	ScheduledAt    *string  `json:"scheduled_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	StopCount      int      `json:"stop_count" validate:"gte=0,lte=5"`
	FromZone       string   `json:"from_zone,omitempty" validate:"omitempty,max=100"`
	ToZone         string   `json:"to_zone,omitempty" validate:"omitempty,max=100"`
	Notes          *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type AssignBookingRequest struct {
	DriverID  *string `json:"driver_id,omitempty" validate:"omitempty,uuid"`
	VehicleID *string `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
	Version   *int    `json:"version,omitempty" validate:"omitempty,min=1"`
}

type UpdateBookingStatusRequest struct {
	Status  string  `json:"status" validate:"required,oneof=pending accepted started completed cancelled no_driver"`
	Reason  *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Version *int    `json:"version,omitempty" validate:"omitempty,min=1"`
}

// UpdateFareRequest carries the fare exactly as typed; it is parsed
// server-side so malformed input is rejected before any write.
type UpdateFareRequest struct {
	FareAmount string `json:"fare_amount" validate:"required"`
	Version    *int   `json:"version,omitempty" validate:"omitempty,min=1"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid failed refunded"`
	Version       *int   `json:"version,omitempty" validate:"omitempty,min=1"`
}

type CancelBookingRequest struct {
	Reason  string `json:"reason" validate:"required,notblank,max=500"`
	Version *int   `json:"version,omitempty" validate:"omitempty,min=1"`
}
