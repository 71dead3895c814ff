package response

import (
	"fleet-admin/internal/data/entity"
)

type AnalyticsSummaryResponse struct {
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ActiveBookings    int     `json:"active_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	NoDriverBookings  int     `json:"no_driver_bookings"`
	CompletionRate    float64 `json:"completion_rate_pct"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageFare       float64 `json:"average_fare"`
	ActiveDrivers     int     `json:"active_drivers"`
	OnlineDrivers     int     `json:"online_drivers"`
	ActiveVehicles    int     `json:"active_vehicles"`
	PendingKYC        int     `json:"pending_kyc"`
}

type DailyRevenueResponse struct {
	Day       string  `json:"day"`
	Bookings  int     `json:"bookings"`
	Completed int     `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

type ServiceTypeBreakdownResponse struct {
	ServiceType entity.ServiceType `json:"service_type"`
	Bookings    int                `json:"bookings"`
	Revenue     float64            `json:"revenue"`
	Share       float64            `json:"share_pct"`
}

type DriverRankingResponse struct {
	DriverID       string  `json:"driver_id"`
	FullName       string  `json:"full_name"`
	Rating         float64 `json:"rating"`
	CompletedRides int     `json:"completed_rides"`
	Earnings       float64 `json:"earnings"`
}

// AnalyticsDashboardResponse bundles every chart of the analytics page
type AnalyticsDashboardResponse struct {
	From          *string                        `json:"from,omitempty"`
	To            *string                        `json:"to,omitempty"`
	Summary       AnalyticsSummaryResponse       `json:"summary"`
	RevenueTrend  []DailyRevenueResponse         `json:"revenue_trend"`
	ByServiceType []ServiceTypeBreakdownResponse `json:"by_service_type"`
	TopDrivers    []DriverRankingResponse        `json:"top_drivers"`
}
