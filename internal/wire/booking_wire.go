package wire

import (
	"fleet-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings)
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/assign", bookingHandler.AssignBooking)
		r.Put("/{id}/status", bookingHandler.ChangeStatus)
		r.Put("/{id}/fare", bookingHandler.UpdateFare)
		r.Put("/{id}/payment", bookingHandler.UpdatePaymentStatus)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
