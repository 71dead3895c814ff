package adaptor

import (
	"net/http"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

func pricingListFromQuery(r *http.Request) *request.PricingListRequest {
	q := r.URL.Query()
	return &request.PricingListRequest{
		ServiceType: q.Get("service_type"),
		VehicleType: q.Get("vehicle_type"),
		Active:      utils.ParseBoolPtr(q.Get("active")),
	}
}

// ListRules handles GET /api/admin/pricing/rules
func (h *PricingHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ListRules(r.Context(), pricingListFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list pricing rules")
		return
	}

	utils.ResponseSuccess(w, "success", rules)
}

// GetRule handles GET /api/admin/pricing/rules/{id}
func (h *PricingHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.service.GetRule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get pricing rule")
		return
	}

	utils.ResponseSuccess(w, "success", rule)
}

// CreateRule handles POST /api/admin/pricing/rules
func (h *PricingHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePricingRuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rule, err := h.service.CreateRule(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create pricing rule")
		return
	}

	utils.ResponseCreated(w, "Pricing rule created", rule)
}

// UpdateRule handles PUT /api/admin/pricing/rules/{id}
func (h *PricingHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePricingRuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rule, err := h.service.UpdateRule(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update pricing rule")
		return
	}

	utils.ResponseSuccess(w, "Pricing rule updated", rule)
}

// DeactivateRule handles DELETE /api/admin/pricing/rules/{id}
func (h *PricingHandler) DeactivateRule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "deactivate pricing rule")
		return
	}

	utils.ResponseSuccess(w, "Pricing rule deactivated", nil)
}

// ListZones handles GET /api/admin/pricing/zones
func (h *PricingHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.service.ListZones(r.Context(), pricingListFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list zone pricing")
		return
	}

	utils.ResponseSuccess(w, "success", zones)
}

// CreateZone handles POST /api/admin/pricing/zones
func (h *PricingHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req request.CreateZonePricingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	zone, err := h.service.CreateZone(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create zone pricing")
		return
	}

	utils.ResponseCreated(w, "Zone pricing created", zone)
}

// UpdateZone handles PUT /api/admin/pricing/zones/{id}
func (h *PricingHandler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateZonePricingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	zone, err := h.service.UpdateZone(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update zone pricing")
		return
	}

	utils.ResponseSuccess(w, "Zone pricing updated", zone)
}

// DeactivateZone handles DELETE /api/admin/pricing/zones/{id}
func (h *PricingHandler) DeactivateZone(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateZone(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "deactivate zone pricing")
		return
	}

	utils.ResponseSuccess(w, "Zone pricing deactivated", nil)
}

// Calculate handles POST /api/admin/pricing/calculate
func (h *PricingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req request.FareCalculatorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.Calculate(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "calculate fare")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}
