package adaptor

import (
	"net/http"
	"strconv"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service   usecase.VehicleService
	maxUpload int64
	log       *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, maxUpload int64, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service:   service,
		maxUpload: maxUpload,
		log:       log.With(zap.String("handler", "vehicle")),
	}
}

// ListVehicles handles GET /api/admin/vehicles
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	unassigned, _ := strconv.ParseBool(q.Get("unassigned"))
	req := &request.VehicleListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           q.Get("status"),
		VehicleType:      q.Get("vehicle_type"),
		DriverID:         q.Get("driver_id"),
		Unassigned:       unassigned,
		Search:           q.Get("search"),
	}

	vehicles, err := h.service.ListVehicles(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// GetVehicle handles GET /api/admin/vehicles/{id}
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.service.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// CreateVehicle handles POST /api/admin/vehicles. A multipart form may carry
// one part per vehicle document type.
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVehicleRequest

	if isMultipart(r) {
		if !parseMultipart(w, r, h.maxUpload) {
			return
		}
		var files formFiles
		defer files.Close()

		fields := make([]string, 0, len(entity.VehicleDocumentTypes))
		for _, t := range entity.VehicleDocumentTypes {
			fields = append(fields, string(t))
		}
		docs, err := files.files(r, fields...)
		if err != nil {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}

		req = request.CreateVehicleRequest{
			Make:        r.FormValue("make"),
			Model:       r.FormValue("model"),
			Year:        utils.ParseInt(r.FormValue("year"), 0),
			PlateNumber: r.FormValue("plate_number"),
			Color:       formPtr(r, "color"),
			VehicleType: r.FormValue("vehicle_type"),
			Status:      r.FormValue("status"),
			Capacity:    utils.ParseInt(r.FormValue("capacity"), 0),
			DriverID:    formPtr(r, "driver_id"),
			Documents:   docs,
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.CreateVehicle(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "Vehicle created", resp)
}

// UpdateVehicle handles PUT /api/admin/vehicles/{id}
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateVehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vehicle, err := h.service.UpdateVehicle(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle updated", vehicle)
}

// AssignDriver handles PUT /api/admin/vehicles/{id}/driver
func (h *VehicleHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	var req request.AssignVehicleDriverRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vehicle, err := h.service.AssignDriver(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "assign vehicle driver")
		return
	}

	utils.ResponseSuccess(w, "Vehicle driver updated", vehicle)
}

// DeleteVehicle handles DELETE /api/admin/vehicles/{id}
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle deleted", nil)
}

// ListDocuments handles GET /api/admin/vehicles/{id}/documents
func (h *VehicleHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "list vehicle documents")
		return
	}

	utils.ResponseSuccess(w, "success", docs)
}

// AddDocument handles POST /api/admin/vehicles/{id}/documents (multipart)
func (h *VehicleHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
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

	req := &request.CreateVehicleDocumentRequest{
		DocumentType:   r.FormValue("document_type"),
		DocumentNumber: formPtr(r, "document_number"),
		IssueDate:      formPtr(r, "issue_date"),
		ExpiryDate:     formPtr(r, "expiry_date"),
		Notes:          formPtr(r, "notes"),
		File:           file,
	}

	doc, err := h.service.AddDocument(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(h.log, w, err, "add vehicle document")
		return
	}

	utils.ResponseCreated(w, "Document uploaded", doc)
}

// VerifyDocument handles PUT /api/admin/vehicles/{id}/documents/{docID}/verify
func (h *VehicleHandler) VerifyDocument(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyVehicleDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := h.service.VerifyDocument(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "docID"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "verify vehicle document")
		return
	}

	utils.ResponseSuccess(w, "Document updated", doc)
}

// DeleteDocument handles DELETE /api/admin/vehicles/{id}/documents/{docID}
func (h *VehicleHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDocument(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "docID")); err != nil {
		handleServiceError(h.log, w, err, "delete vehicle document")
		return
	}

	utils.ResponseSuccess(w, "Document deleted", nil)
}

// ListMaintenance handles GET /api/admin/vehicles/{id}/maintenance
func (h *VehicleHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.ListMaintenance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "list maintenance")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}

// AddMaintenance handles POST /api/admin/vehicles/{id}/maintenance
func (h *VehicleHandler) AddMaintenance(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMaintenanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.service.AddMaintenance(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add maintenance")
		return
	}

	utils.ResponseCreated(w, "Maintenance recorded", entry)
}

// DeleteMaintenance handles DELETE /api/admin/vehicles/{id}/maintenance/{logID}
func (h *VehicleHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMaintenance(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "logID")); err != nil {
		handleServiceError(h.log, w, err, "delete maintenance")
		return
	}

	utils.ResponseSuccess(w, "Maintenance entry deleted", nil)
}

// Performance handles GET /api/admin/vehicles/{id}/performance
func (h *VehicleHandler) Performance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.service.Performance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "vehicle performance")
		return
	}

	utils.ResponseSuccess(w, "success", perf)
}

// AddPerformance handles POST /api/admin/vehicles/{id}/performance
func (h *VehicleHandler) AddPerformance(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePerformanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	perf, err := h.service.AddPerformance(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add performance sample")
		return
	}

	utils.ResponseCreated(w, "Performance recorded", perf)
}

// ListAlerts handles GET /api/admin/vehicles/{id}/alerts?unresolved=true
func (h *VehicleHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	unresolved, _ := strconv.ParseBool(r.URL.Query().Get("unresolved"))

	alerts, err := h.service.ListAlerts(r.Context(), chi.URLParam(r, "id"), unresolved)
	if err != nil {
		handleServiceError(h.log, w, err, "list alerts")
		return
	}

	utils.ResponseSuccess(w, "success", alerts)
}

// CreateAlert handles POST /api/admin/vehicles/{id}/alerts
func (h *VehicleHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAlertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	alert, err := h.service.CreateAlert(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create alert")
		return
	}

	utils.ResponseCreated(w, "Alert created", alert)
}

// ResolveAlert handles PUT /api/admin/vehicles/{id}/alerts/{alertID}/resolve
func (h *VehicleHandler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := h.service.ResolveAlert(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "alertID"))
	if err != nil {
		handleServiceError(h.log, w, err, "resolve alert")
		return
	}

	utils.ResponseSuccess(w, "Alert resolved", alert)
}

// ScanAlerts handles POST /api/admin/vehicles/alerts/scan
func (h *VehicleHandler) ScanAlerts(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ScanAlerts(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "scan alerts")
		return
	}

	utils.ResponseSuccess(w, "Alert scan finished", result)
}
