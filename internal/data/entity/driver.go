package entity

import (
	"time"

	"github.com/google/uuid"
)

type KYCStatus string

const (
	KYCStatusPending               KYCStatus = "pending"
	KYCStatusApproved              KYCStatus = "approved"
	KYCStatusRejected              KYCStatus = "rejected"
	KYCStatusResubmissionRequested KYCStatus = "resubmission_requested"
)

type DriverDocumentType string

const (
	DriverDocDrivingLicense     DriverDocumentType = "driving_license"
	DriverDocIDProof            DriverDocumentType = "id_proof"
	DriverDocAddressProof       DriverDocumentType = "address_proof"
	DriverDocPoliceVerification DriverDocumentType = "police_verification"
)

// RequiredDriverDocuments is the KYC checklist, in display order
var RequiredDriverDocuments = []DriverDocumentType{
	DriverDocDrivingLicense,
	DriverDocIDProof,
	DriverDocAddressProof,
	DriverDocPoliceVerification,
}

func (t DriverDocumentType) Valid() bool {
	for _, d := range RequiredDriverDocuments {
		if d == t {
			return true
		}
	}
	return false
}

type Driver struct {
	Base
	UserID                *uuid.UUID `db:"user_id"`
	FullName              string     `db:"full_name"`
	Phone                 string     `db:"phone"`
	Email                 *string    `db:"email"`
	LicenseNumber         string     `db:"license_number"`
	LicenseExpiry         *time.Time `db:"license_expiry"`
	Address               *string    `db:"address"`
	KYCStatus             KYCStatus  `db:"kyc_status"`
	KYCRemarks            *string    `db:"kyc_remarks"`
	KYCReviewedAt         *time.Time `db:"kyc_reviewed_at"`
	KYCReviewedBy         *uuid.UUID `db:"kyc_reviewed_by"`
	ProfilePictureURL     *string    `db:"profile_picture_url"`
	LicenseDocumentURL    *string    `db:"license_document_url"`
	IDProofURL            *string    `db:"id_proof_url"`
	AddressProofURL       *string    `db:"address_proof_url"`
	PoliceVerificationURL *string    `db:"police_verification_url"`
	Rating                float64    `db:"rating"`
	TotalRides            int        `db:"total_rides"`
	IsOnline              bool       `db:"is_online"`
	CurrentLat            *float64   `db:"current_latitude"`
	CurrentLng            *float64   `db:"current_longitude"`
	LocationUpdatedAt     *time.Time `db:"location_updated_at"`
}

// DocumentURL returns the stored URL for a KYC document type
func (d *Driver) DocumentURL(t DriverDocumentType) *string {
	switch t {
	case DriverDocDrivingLicense:
		return d.LicenseDocumentURL
	case DriverDocIDProof:
		return d.IDProofURL
	case DriverDocAddressProof:
		return d.AddressProofURL
	case DriverDocPoliceVerification:
		return d.PoliceVerificationURL
	}
	return nil
}

func (d *Driver) SetDocumentURL(t DriverDocumentType, url *string) {
	switch t {
	case DriverDocDrivingLicense:
		d.LicenseDocumentURL = url
	case DriverDocIDProof:
		d.IDProofURL = url
	case DriverDocAddressProof:
		d.AddressProofURL = url
	case DriverDocPoliceVerification:
		d.PoliceVerificationURL = url
	}
}

// DriverPerformance aggregates a driver's bookings
type DriverPerformance struct {
	DriverID        uuid.UUID `db:"driver_id"`
	TotalBookings   int       `db:"total_bookings"`
	CompletedRides  int       `db:"completed_rides"`
	CancelledRides  int       `db:"cancelled_rides"`
	TotalEarnings   float64   `db:"total_earnings"`
	TotalDistanceKm float64   `db:"total_distance_km"`
}

func (t DriverDocumentType) Label() string {
	switch t {
	case DriverDocDrivingLicense:
		return "Driving License"
	case DriverDocIDProof:
		return "ID Proof"
	case DriverDocAddressProof:
		return "Address Proof"
	case DriverDocPoliceVerification:
		return "Police Verification"
	}
	return string(t)
}
