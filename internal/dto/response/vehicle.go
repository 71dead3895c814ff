package response

import (
	"time"

	"fleet-admin/internal/data/entity"
)

type VehicleResponse struct {
	ID                 string               `json:"id"`
	Make               string               `json:"make"`
	Model              string               `json:"model"`
	Year               int                  `json:"year"`
	PlateNumber        string               `json:"plate_number"`
	Color              *string              `json:"color,omitempty"`
	VehicleType        entity.VehicleType   `json:"vehicle_type"`
	Status             entity.VehicleStatus `json:"status"`
	Capacity           int                  `json:"capacity"`
	DriverID           *string              `json:"driver_id"`
	Driver             *DriverSummary       `json:"driver,omitempty"`
	OdometerKm         float64              `json:"odometer_km"`
	FuelEfficiencyKmpl *float64             `json:"fuel_efficiency_kmpl,omitempty"`
	Version            int                  `json:"version"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type VehicleSummary struct {
	ID          string             `json:"id"`
	Make        string             `json:"make"`
	Model       string             `json:"model"`
	PlateNumber string             `json:"plate_number"`
	Color       *string            `json:"color,omitempty"`
	VehicleType entity.VehicleType `json:"vehicle_type"`
}

type CreateVehicleResponse struct {
	Vehicle  VehicleResponse `json:"vehicle"`
	Warnings []string        `json:"warnings"`
}

type VehicleDocumentResponse struct {
	ID             string                     `json:"id"`
	VehicleID      string                     `json:"vehicle_id"`
	DocumentType   entity.VehicleDocumentType `json:"document_type"`
	DocumentNumber *string                    `json:"document_number,omitempty"`
	FileURL        string                     `json:"file_url"`
	IssueDate      *time.Time                 `json:"issue_date,omitempty"`
	ExpiryDate     *time.Time                 `json:"expiry_date,omitempty"`
	ExpiryStatus   string                     `json:"expiry_status"`
	IsVerified     bool                       `json:"is_verified"`
	VerifiedAt     *time.Time                 `json:"verified_at,omitempty"`
	Notes          *string                    `json:"notes,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
}

type MaintenanceLogResponse struct {
	ID                    string     `json:"id"`
	VehicleID             string     `json:"vehicle_id"`
	ServiceType           string     `json:"service_type"`
	Description           *string    `json:"description,omitempty"`
	Cost                  float64    `json:"cost"`
	OdometerKm            float64    `json:"odometer_km"`
	ServiceDate           time.Time  `json:"service_date"`
	NextServiceDate       *time.Time `json:"next_service_date,omitempty"`
	NextServiceOdometerKm *float64   `json:"next_service_odometer_km,omitempty"`
	ServiceProvider       *string    `json:"service_provider,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type MaintenanceHistoryResponse struct {
	Logs      []MaintenanceLogResponse `json:"logs"`
	TotalCost float64                  `json:"total_cost"`
}

// PerformanceSampleResponse carries the distance and fuel economy derived
// from the previous sample; both are nil for the first one
type PerformanceSampleResponse struct {
	ID                 string    `json:"id"`
	RecordedAt         time.Time `json:"recorded_at"`
	OdometerKm         float64   `json:"odometer_km"`
	FuelConsumedLiters float64   `json:"fuel_consumed_liters"`
	TripsCount         int       `json:"trips_count"`
	Notes              *string   `json:"notes,omitempty"`
	DistanceKm         *float64  `json:"distance_km,omitempty"`
	FuelEconomyKmpl    *float64  `json:"fuel_economy_kmpl,omitempty"`
}

type PerformanceSummaryResponse struct {
	Samples         []PerformanceSampleResponse `json:"samples"`
	TotalDistanceKm float64                     `json:"total_distance_km"`
	TotalFuelLiters float64                     `json:"total_fuel_liters"`
	TotalTrips      int                         `json:"total_trips"`
	AverageKmpl     *float64                    `json:"average_kmpl"`
}

type VehicleAlertResponse struct {
	ID          string               `json:"id"`
	VehicleID   string               `json:"vehicle_id"`
	AlertType   entity.AlertType     `json:"alert_type"`
	Priority    entity.AlertPriority `json:"priority"`
	Title       string               `json:"title"`
	Message     *string              `json:"message,omitempty"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	ReferenceID *string              `json:"reference_id,omitempty"`
	IsResolved  bool                 `json:"is_resolved"`
	ResolvedAt  *time.Time           `json:"resolved_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type AlertScanResponse struct {
	Created int                    `json:"created"`
	Alerts  []VehicleAlertResponse `json:"alerts"`
}

// Helper converters
func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID.String(),
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		PlateNumber:        v.PlateNumber,
		Color:              v.Color,
		VehicleType:        v.VehicleType,
		Status:             v.Status,
		Capacity:           v.Capacity,
		DriverID:           idString(v.DriverID),
		OdometerKm:         v.OdometerKm,
		FuelEfficiencyKmpl: v.FuelEfficiencyKmpl,
		Version:            v.Version,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func VehicleToSummary(v *entity.Vehicle) *VehicleSummary {
	if v == nil {
		return nil
	}
	return &VehicleSummary{
		ID:          v.ID.String(),
		Make:        v.Make,
		Model:       v.Model,
		PlateNumber: v.PlateNumber,
		Color:       v.Color,
		VehicleType: v.VehicleType,
	}
}

func VehicleDocumentToResponse(d *entity.VehicleDocument, expiryStatus string) VehicleDocumentResponse {
	return VehicleDocumentResponse{
		ID:             d.ID.String(),
		VehicleID:      d.VehicleID.String(),
		DocumentType:   d.DocumentType,
		DocumentNumber: d.DocumentNumber,
		FileURL:        d.FileURL,
		IssueDate:      d.IssueDate,
		ExpiryDate:     d.ExpiryDate,
		ExpiryStatus:   expiryStatus,
		IsVerified:     d.IsVerified,
		VerifiedAt:     d.VerifiedAt,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
	}
}

func MaintenanceLogToResponse(m *entity.VehicleMaintenanceLog) MaintenanceLogResponse {
	return MaintenanceLogResponse{
		ID:                    m.ID.String(),
		VehicleID:             m.VehicleID.String(),
		ServiceType:           m.ServiceType,
		Description:           m.Description,
		Cost:                  m.Cost,
		OdometerKm:            m.OdometerKm,
		ServiceDate:           m.ServiceDate,
		NextServiceDate:       m.NextServiceDate,
		NextServiceOdometerKm: m.NextServiceOdometerKm,
		ServiceProvider:       m.ServiceProvider,
		CreatedAt:             m.CreatedAt,
	}
}

func VehicleAlertToResponse(a *entity.VehicleAlert) VehicleAlertResponse {
	return VehicleAlertResponse{
		ID:          a.ID.String(),
		VehicleID:   a.VehicleID.String(),
		AlertType:   a.AlertType,
		Priority:    a.Priority,
		Title:       a.Title,
		Message:     a.Message,
		DueDate:     a.DueDate,
		ReferenceID: idString(a.ReferenceID),
		IsResolved:  a.IsResolved,
		ResolvedAt:  a.ResolvedAt,
		CreatedAt:   a.CreatedAt,
	}
}
