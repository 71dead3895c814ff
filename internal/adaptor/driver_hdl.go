package adaptor

import (
	"context"
	"net/http"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DriverHandler struct {
	service   usecase.DriverService
	maxUpload int64
	log       *zap.Logger
}

func NewDriverHandler(service usecase.DriverService, maxUpload int64, log *zap.Logger) *DriverHandler {
	return &DriverHandler{
		service:   service,
		maxUpload: maxUpload,
		log:       log.With(zap.String("handler", "driver")),
	}
}

func driverDocumentFields() []string {
	fields := make([]string, 0, len(entity.RequiredDriverDocuments))
	for _, t := range entity.RequiredDriverDocuments {
		fields = append(fields, string(t))
	}
	return fields
}

// SendOTP handles POST /api/admin/drivers/otp
func (h *DriverHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendDriverOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SendOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "send driver OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent", resp)
}

// CreateDriver handles POST /api/admin/drivers (multipart). Document parts
// are named after their document type.
func (h *DriverHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, h.maxUpload) {
		return
	}

	var files formFiles
	defer files.Close()

	picture, err := files.file(r, "profile_picture")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}
	docs, err := files.files(r, driverDocumentFields()...)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	req := &request.CreateDriverRequest{
		Phone:          r.FormValue("phone"),
		OTP:            r.FormValue("otp"),
		FullName:       r.FormValue("full_name"),
		Email:          formPtr(r, "email"),
		LicenseNumber:  r.FormValue("license_number"),
		LicenseExpiry:  formPtr(r, "license_expiry"),
		Address:        formPtr(r, "address"),
		ProfilePicture: picture,
		Documents:      docs,
	}

	resp, err := h.service.CreateDriver(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "create driver")
		return
	}

	utils.ResponseCreated(w, "Driver created", resp)
}

// ListDrivers handles GET /api/admin/drivers
func (h *DriverHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &request.DriverListRequest{
		PaginatedRequest: pageFromQuery(r),
		KYCStatus:        q.Get("kyc_status"),
		Online:           utils.ParseBoolPtr(q.Get("online")),
		Search:           q.Get("search"),
	}

	drivers, err := h.service.ListDrivers(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list drivers")
		return
	}

	utils.ResponseSuccess(w, "success", drivers)
}

// GetDriver handles GET /api/admin/drivers/{id}
func (h *DriverHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	driver, err := h.service.GetDriver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get driver")
		return
	}

	utils.ResponseSuccess(w, "success", driver)
}

// UpdateDriver handles PUT /api/admin/drivers/{id}. Accepts JSON, or a
// multipart form when a new profile picture is attached.
func (h *DriverHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateDriverRequest

	if isMultipart(r) {
		if !parseMultipart(w, r, h.maxUpload) {
			return
		}
		var files formFiles
		defer files.Close()

		picture, err := files.file(r, "profile_picture")
		if err != nil {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		req = request.UpdateDriverRequest{
			FullName:       formPtr(r, "full_name"),
			Email:          formPtr(r, "email"),
			LicenseNumber:  formPtr(r, "license_number"),
			LicenseExpiry:  formPtr(r, "license_expiry"),
			Address:        formPtr(r, "address"),
			ProfilePicture: picture,
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	driver, err := h.service.UpdateDriver(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update driver")
		return
	}

	utils.ResponseSuccess(w, "Driver updated", driver)
}

// DeleteDriver handles DELETE /api/admin/drivers/{id}
func (h *DriverHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDriver(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete driver")
		return
	}

	utils.ResponseSuccess(w, "Driver deleted", nil)
}

// Performance handles GET /api/admin/drivers/{id}/performance
func (h *DriverHandler) Performance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.service.Performance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "driver performance")
		return
	}

	utils.ResponseSuccess(w, "success", perf)
}

// UpdateLocation handles PUT /api/admin/drivers/{id}/location
func (h *DriverHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateDriverLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	driver, err := h.service.UpdateLocation(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update driver location")
		return
	}

	utils.ResponseSuccess(w, "Location updated", driver)
}

// ListDocuments handles GET /api/admin/documents
func (h *DriverHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &request.DocumentListRequest{
		PaginatedRequest: pageFromQuery(r),
		DriverID:         q.Get("driver_id"),
		KYCStatus:        q.Get("kyc_status"),
	}

	docs, err := h.service.ListDocuments(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list documents")
		return
	}

	utils.ResponseSuccess(w, "success", docs)
}

// GetDocuments handles GET /api/admin/documents/{id}
func (h *DriverHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.GetDocuments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get documents")
		return
	}

	utils.ResponseSuccess(w, "success", docs)
}

// UploadDocument handles POST /api/admin/documents/{id} (multipart with
// document_type and file)
func (h *DriverHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, h.maxUpload) {
		return
	}

	var files formFiles
	defer files.Close()

	file, err := files.file(r, "file")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	req := &request.UploadDriverDocumentRequest{
		DocumentType: r.FormValue("document_type"),
		File:         file,
	}

	docs, err := h.service.UploadDocument(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(h.log, w, err, "upload document")
		return
	}

	utils.ResponseSuccess(w, "Document uploaded", docs)
}

// ApproveKYC handles PUT /api/admin/documents/{id}/approve
func (h *DriverHandler) ApproveKYC(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "approve KYC", "KYC approved", h.service.ApproveKYC)
}

// RejectKYC handles PUT /api/admin/documents/{id}/reject
func (h *DriverHandler) RejectKYC(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "reject KYC", "KYC rejected", h.service.RejectKYC)
}

// RequestResubmission handles PUT /api/admin/documents/{id}/resubmit
func (h *DriverHandler) RequestResubmission(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "request resubmission", "Resubmission requested", h.service.RequestResubmission)
}

type kycDecision func(ctx context.Context, driverID string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error)

func (h *DriverHandler) decide(w http.ResponseWriter, r *http.Request, operation, message string, fn kycDecision) {
	var req request.KYCDecisionRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	docs, err := fn(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, operation)
		return
	}

	utils.ResponseSuccess(w, message, docs)
}
