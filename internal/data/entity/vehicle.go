package entity

import (
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleTypeHatchback VehicleType = "hatchback"
	VehicleTypeSedan     VehicleType = "sedan"
	VehicleTypeSUV       VehicleType = "suv"
	VehicleTypeAuto      VehicleType = "auto"
	VehicleTypeBike      VehicleType = "bike"
	VehicleTypeLuxury    VehicleType = "luxury"
)

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusInactive    VehicleStatus = "inactive"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

type Vehicle struct {
	Base
	Make               string        `db:"make"`
	Model              string        `db:"model"`
	Year               int           `db:"year"`
	PlateNumber        string        `db:"plate_number"`
	Color              *string       `db:"color"`
	VehicleType        VehicleType   `db:"vehicle_type"`
	Status             VehicleStatus `db:"status"`
	Capacity           int           `db:"capacity"`
	DriverID           *uuid.UUID    `db:"driver_id"`
	OdometerKm         float64       `db:"odometer_km"`
	FuelEfficiencyKmpl *float64      `db:"fuel_efficiency_kmpl"`
	Version            int           `db:"version"`
}

type VehicleDocumentType string

const (
	VehicleDocRegistration VehicleDocumentType = "registration"
	VehicleDocInsurance    VehicleDocumentType = "insurance"
	VehicleDocPollution    VehicleDocumentType = "pollution"
	VehicleDocPermit       VehicleDocumentType = "permit"
	VehicleDocFitness      VehicleDocumentType = "fitness"
)

var VehicleDocumentTypes = []VehicleDocumentType{
	VehicleDocRegistration,
	VehicleDocInsurance,
	VehicleDocPollution,
	VehicleDocPermit,
	VehicleDocFitness,
}

type VehicleDocument struct {
	BaseNoDelete
	VehicleID      uuid.UUID           `db:"vehicle_id"`
	DocumentType   VehicleDocumentType `db:"document_type"`
	DocumentNumber *string             `db:"document_number"`
	FileURL        string              `db:"file_url"`
	IssueDate      *time.Time          `db:"issue_date"`
	ExpiryDate     *time.Time          `db:"expiry_date"`
	IsVerified     bool                `db:"is_verified"`
	VerifiedAt     *time.Time          `db:"verified_at"`
	Notes          *string             `db:"notes"`
}

type VehicleMaintenanceLog struct {
	BaseSimple
	VehicleID             uuid.UUID  `db:"vehicle_id"`
	ServiceType           string     `db:"service_type"`
	Description           *string    `db:"description"`
	Cost                  float64    `db:"cost"`
	OdometerKm            float64    `db:"odometer_km"`
	ServiceDate           time.Time  `db:"service_date"`
	NextServiceDate       *time.Time `db:"next_service_date"`
	NextServiceOdometerKm *float64   `db:"next_service_odometer_km"`
	ServiceProvider       *string    `db:"service_provider"`
}

// VehiclePerformance is one periodic odometer/fuel sample
type VehiclePerformance struct {
	BaseSimple
	VehicleID          uuid.UUID `db:"vehicle_id"`
	RecordedAt         time.Time `db:"recorded_at"`
	OdometerKm         float64   `db:"odometer_km"`
	FuelConsumedLiters float64   `db:"fuel_consumed_liters"`
	TripsCount         int       `db:"trips_count"`
	Notes              *string   `db:"notes"`
}

type AlertPriority string

const (
	AlertPriorityLow      AlertPriority = "low"
	AlertPriorityMedium   AlertPriority = "medium"
	AlertPriorityHigh     AlertPriority = "high"
	AlertPriorityCritical AlertPriority = "critical"
)

type AlertType string

const (
	AlertTypeDocumentExpiry  AlertType = "document_expiry"
	AlertTypeMaintenanceDue  AlertType = "maintenance_due"
	AlertTypeServiceReminder AlertType = "service_reminder"
	AlertTypeCustom          AlertType = "custom"
)

type VehicleAlert struct {
	BaseNoDelete
	VehicleID   uuid.UUID     `db:"vehicle_id"`
	AlertType   AlertType     `db:"alert_type"`
	Priority    AlertPriority `db:"priority"`
	Title       string        `db:"title"`
	Message     *string       `db:"message"`
	DueDate     *time.Time    `db:"due_date"`
	ReferenceID *uuid.UUID    `db:"reference_id"`
	IsResolved  bool          `db:"is_resolved"`
	ResolvedAt  *time.Time    `db:"resolved_at"`
	ResolvedBy  *uuid.UUID    `db:"resolved_by"`
}

func (t VehicleDocumentType) Valid() bool {
	switch t {
	case VehicleDocRegistration, VehicleDocInsurance, VehicleDocPollution, VehicleDocPermit, VehicleDocFitness:
		return true
	}
	return false
}
