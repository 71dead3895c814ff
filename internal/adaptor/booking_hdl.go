package adaptor

import (
	"net/http"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /api/admin/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &request.BookingListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           q.Get("status"),
		ServiceType:      q.Get("service_type"),
		DriverID:         q.Get("driver_id"),
		CustomerID:       q.Get("customer_id"),
		From:             q.Get("from"),
		To:               q.Get("to"),
		Search:           q.Get("search"),
	}

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/admin/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CreateBooking handles POST /api/admin/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// AssignBooking handles PUT /api/admin/bookings/{id}/assign
func (h *BookingHandler) AssignBooking(w http.ResponseWriter, r *http.Request) {
	var req request.AssignBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.AssignBooking(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "assign booking")
		return
	}

	utils.ResponseSuccess(w, "Booking assigned", booking)
}

// ChangeStatus handles PUT /api/admin/bookings/{id}/status
func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.ChangeStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "change booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}

// UpdateFare handles PUT /api/admin/bookings/{id}/fare
func (h *BookingHandler) UpdateFare(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateFareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateFare(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update fare")
		return
	}

	utils.ResponseSuccess(w, "Fare updated", booking)
}

// UpdatePaymentStatus handles PUT /api/admin/bookings/{id}/payment
func (h *BookingHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePaymentStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status updated", booking)
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CancelBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}
