package entity

import (
	"time"

	"github.com/google/uuid"
)

type AnalyticsSummary struct {
	TotalBookings     int     `db:"total_bookings"`
	PendingBookings   int     `db:"pending_bookings"`
	ActiveBookings    int     `db:"active_bookings"`
	CompletedBookings int     `db:"completed_bookings"`
	CancelledBookings int     `db:"cancelled_bookings"`
	NoDriverBookings  int     `db:"no_driver_bookings"`
	TotalRevenue      float64 `db:"total_revenue"`
	AverageFare       float64 `db:"average_fare"`
	ActiveDrivers     int     `db:"active_drivers"`
	OnlineDrivers     int     `db:"online_drivers"`
	ActiveVehicles    int     `db:"active_vehicles"`
	PendingKYC        int     `db:"pending_kyc"`
}

type DailyRevenue struct {
	Day       time.Time `db:"day"`
	Bookings  int       `db:"bookings"`
	Completed int       `db:"completed"`
	Revenue   float64   `db:"revenue"`
}

type ServiceTypeBreakdown struct {
	ServiceType ServiceType `db:"service_type"`
	Bookings    int         `db:"bookings"`
	Revenue     float64     `db:"revenue"`
}

type DriverRanking struct {
	DriverID       uuid.UUID `db:"driver_id"`
	FullName       string    `db:"full_name"`
	Rating         float64   `db:"rating"`
	CompletedRides int       `db:"completed_rides"`
	Earnings       float64   `db:"earnings"`
}

// ActiveTrip joins an in-progress booking with its driver and vehicle for
// the live map
type ActiveTrip struct {
	Booking Booking
	Driver  Driver
	Vehicle *Vehicle
}
