package request

type SendDriverOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

// CreateDriverRequest is the final step of the onboarding wizard. Files
// are optional; a failed upload is reported as a warning.
type CreateDriverRequest struct {
	Phone         string  `json:"phone" validate:"required,e164"`
	OTP           string  `json:"otp" validate:"required,numeric"`
	FullName      string  `json:"full_name" validate:"required,notblank,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	LicenseNumber string  `json:"license_number" validate:"required,notblank,max=50"`
	LicenseExpiry *string `json:"license_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=500"`

	ProfilePicture *File            `json:"-" validate:"-"`
	Documents      map[string]*File `json:"-" validate:"-"`
}

type UpdateDriverRequest struct {
	FullName      *string `json:"full_name,omitempty" validate:"omitempty,notblank,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	LicenseNumber *string `json:"license_number,omitempty" validate:"omitempty,notblank,max=50"`
	LicenseExpiry *string `json:"license_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=500"`

	ProfilePicture *File `json:"-" validate:"-"`
}

type DriverListRequest struct {
	PaginatedRequest
	KYCStatus string `json:"kyc_status" validate:"omitempty,oneof=pending approved rejected resubmission_requested"`
	Online    *bool  `json:"online"`
	Search    string `json:"search" validate:"omitempty,max=100"`
}

type UpdateDriverLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	IsOnline  *bool   `json:"is_online,omitempty"`
}

type DocumentListRequest struct {
	PaginatedRequest
	DriverID  string `json:"driver_id" validate:"omitempty,uuid"`
	KYCStatus string `json:"kyc_status" validate:"omitempty,oneof=pending approved rejected resubmission_requested"`
}

type UploadDriverDocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required,oneof=driving_license id_proof address_proof police_verification"`
	File         *File  `json:"-" validate:"required"`
}

// KYCDecisionRequest backs approve, reject and request-resubmission. The
// reason is mandatory for the latter two.
type KYCDecisionRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
