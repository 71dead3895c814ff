package request

type VehicleListRequest struct {
	PaginatedRequest
	Status      string `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
	VehicleType string `json:"vehicle_type" validate:"omitempty,oneof=hatchback sedan suv auto bike luxury"`
	DriverID    string `json:"driver_id" validate:"omitempty,uuid"`
	Unassigned  bool   `json:"unassigned"`
	Search      string `json:"search" validate:"omitempty,max=100"`
}

type CreateVehicleRequest struct {
	Make        string  `json:"make" validate:"required,notblank,max=50"`
	Model       string  `json:"model" validate:"required,notblank,max=50"`
	Year        int     `json:"year" validate:"required,gte=1990,lte=2100"`
	PlateNumber string  `json:"plate_number" validate:"required,notblank,max=20"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=30"`
	VehicleType string  `json:"vehicle_type" validate:"required,oneof=hatchback sedan suv auto bike luxury"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive maintenance"`
	Capacity    int     `json:"capacity" validate:"required,gte=1,lte=60"`
	DriverID    *string `json:"driver_id,omitempty" validate:"omitempty,uuid"`

	Documents map[string]*File `json:"-" validate:"-"`
}

// UpdateVehicleRequest is a partial update; nil fields keep their value
type UpdateVehicleRequest struct {
	Make        *string `json:"make,omitempty" validate:"omitempty,notblank,max=50"`
	Model       *string `json:"model,omitempty" validate:"omitempty,notblank,max=50"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,gte=1990,lte=2100"`
	PlateNumber *string `json:"plate_number,omitempty" validate:"omitempty,notblank,max=20"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=30"`
	VehicleType *string `json:"vehicle_type,omitempty" validate:"omitempty,oneof=hatchback sedan suv auto bike luxury"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive maintenance"`
	Capacity    *int    `json:"capacity,omitempty" validate:"omitempty,gte=1,lte=60"`
	Version     *int    `json:"version,omitempty" validate:"omitempty,min=1"`
}

// AssignVehicleDriverRequest assigns a driver, or unassigns when DriverID
// is nil
type AssignVehicleDriverRequest struct {
	DriverID *string `json:"driver_id" validate:"omitempty,uuid"`
	Version  *int    `json:"version,omitempty" validate:"omitempty,min=1"`
}

type CreateVehicleDocumentRequest struct {
	DocumentType   string  `json:"document_type" validate:"required,oneof=registration insurance pollution permit fitness"`
	DocumentNumber *string `json:"document_number,omitempty" validate:"omitempty,max=100"`
	IssueDate      *string `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate     *string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	File           *File   `json:"-" validate:"required"`
}

type VerifyVehicleDocumentRequest struct {
	IsVerified bool `json:"is_verified"`
}

type CreateMaintenanceRequest struct {
	ServiceType           string   `json:"service_type" validate:"required,notblank,max=100"`
	Description           *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Cost                  float64  `json:"cost" validate:"gte=0"`
	OdometerKm            float64  `json:"odometer_km" validate:"gte=0"`
	ServiceDate           string   `json:"service_date" validate:"required,datetime=2006-01-02"`
	NextServiceDate       *string  `json:"next_service_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NextServiceOdometerKm *float64 `json:"next_service_odometer_km,omitempty" validate:"omitempty,gte=0"`
	ServiceProvider       *string  `json:"service_provider,omitempty" validate:"omitempty,max=200"`
}

type CreatePerformanceRequest struct {
	RecordedAt         *string `json:"recorded_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	OdometerKm         float64 `json:"odometer_km" validate:"gte=0"`
	FuelConsumedLiters float64 `json:"fuel_consumed_liters" validate:"gte=0"`
	TripsCount         int     `json:"trips_count" validate:"gte=0"`
	Notes              *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type CreateAlertRequest struct {
	AlertType string  `json:"alert_type" validate:"required,oneof=document_expiry maintenance_due service_reminder custom"`
	Priority  string  `json:"priority" validate:"required,oneof=low medium high critical"`
	Title     string  `json:"title" validate:"required,notblank,max=200"`
	Message   *string `json:"message,omitempty" validate:"omitempty,max=1000"`
	DueDate   *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
