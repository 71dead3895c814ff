package response

import (
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/utils"
)

type DriverResponse struct {
	ID                string           `json:"id"`
	UserID            *string          `json:"user_id,omitempty"`
	FullName          string           `json:"full_name"`
	Phone             string           `json:"phone"`
	Email             *string          `json:"email,omitempty"`
	LicenseNumber     string           `json:"license_number"`
	LicenseExpiry     *time.Time       `json:"license_expiry,omitempty"`
	Address           *string          `json:"address,omitempty"`
	KYCStatus         entity.KYCStatus `json:"kyc_status"`
	KYCRemarks        *string          `json:"kyc_remarks,omitempty"`
	KYCReviewedAt     *time.Time       `json:"kyc_reviewed_at,omitempty"`
	ProfilePictureURL *string          `json:"profile_picture_url,omitempty"`
	Rating            float64          `json:"rating"`
	TotalRides        int              `json:"total_rides"`
	IsOnline          bool             `json:"is_online"`
	CurrentLat        *float64         `json:"current_latitude,omitempty"`
	CurrentLng        *float64         `json:"current_longitude,omitempty"`
	LocationUpdatedAt *time.Time       `json:"location_updated_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// DriverSummary is the compact driver card embedded in bookings and vehicles
type DriverSummary struct {
	ID                string   `json:"id"`
	FullName          string   `json:"full_name"`
	Phone             string   `json:"phone"`
	Rating            float64  `json:"rating"`
	ProfilePictureURL *string  `json:"profile_picture_url,omitempty"`
	IsOnline          bool     `json:"is_online"`
	CurrentLat        *float64 `json:"current_latitude,omitempty"`
	CurrentLng        *float64 `json:"current_longitude,omitempty"`
}

type CreateDriverResponse struct {
	Driver   DriverResponse `json:"driver"`
	Warnings []string       `json:"warnings"`
}

type SendOTPResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DriverDocumentResponse struct {
	Type   entity.DriverDocumentType `json:"type"`
	Label  string                    `json:"label"`
	URL    *string                   `json:"url"`
	Status string                    `json:"status"`
}

// DriverDocumentsResponse is one driver's KYC checklist. ReviewActions is
// empty unless the review is pending.
type DriverDocumentsResponse struct {
	DriverID      string                   `json:"driver_id"`
	FullName      string                   `json:"full_name"`
	Phone         string                   `json:"phone"`
	KYCStatus     entity.KYCStatus         `json:"kyc_status"`
	KYCRemarks    *string                  `json:"kyc_remarks,omitempty"`
	KYCReviewedAt *time.Time               `json:"kyc_reviewed_at,omitempty"`
	Documents     []DriverDocumentResponse `json:"documents"`
	ReviewActions []string                 `json:"review_actions"`
}

type DriverPerformanceResponse struct {
	DriverID        string  `json:"driver_id"`
	TotalBookings   int     `json:"total_bookings"`
	CompletedRides  int     `json:"completed_rides"`
	CancelledRides  int     `json:"cancelled_rides"`
	CompletionRate  float64 `json:"completion_rate_pct"`
	TotalEarnings   float64 `json:"total_earnings"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	Rating          float64 `json:"rating"`
}

// Helper converters
func DriverToResponse(d *entity.Driver) DriverResponse {
	return DriverResponse{
		ID:                d.ID.String(),
		UserID:            idString(d.UserID),
		FullName:          d.FullName,
		Phone:             d.Phone,
		Email:             d.Email,
		LicenseNumber:     d.LicenseNumber,
		LicenseExpiry:     d.LicenseExpiry,
		Address:           d.Address,
		KYCStatus:         d.KYCStatus,
		KYCRemarks:        d.KYCRemarks,
		KYCReviewedAt:     d.KYCReviewedAt,
		ProfilePictureURL: d.ProfilePictureURL,
		Rating:            d.Rating,
		TotalRides:        d.TotalRides,
		IsOnline:          d.IsOnline,
		CurrentLat:        d.CurrentLat,
		CurrentLng:        d.CurrentLng,
		LocationUpdatedAt: d.LocationUpdatedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func DriverToSummary(d *entity.Driver) *DriverSummary {
	if d == nil {
		return nil
	}
	return &DriverSummary{
		ID:                d.ID.String(),
		FullName:          d.FullName,
		Phone:             d.Phone,
		Rating:            d.Rating,
		ProfilePictureURL: d.ProfilePictureURL,
		IsOnline:          d.IsOnline,
		CurrentLat:        d.CurrentLat,
		CurrentLng:        d.CurrentLng,
	}
}

func DriverPerformanceToResponse(p *entity.DriverPerformance, rating float64) DriverPerformanceResponse {
	resp := DriverPerformanceResponse{
		DriverID:        p.DriverID.String(),
		TotalBookings:   p.TotalBookings,
		CompletedRides:  p.CompletedRides,
		CancelledRides:  p.CancelledRides,
		TotalEarnings:   p.TotalEarnings,
		TotalDistanceKm: p.TotalDistanceKm,
		Rating:          rating,
	}
	if p.TotalBookings > 0 {
		resp.CompletionRate = utils.Round2(100 * float64(p.CompletedRides) / float64(p.TotalBookings))
	}
	return resp
}
