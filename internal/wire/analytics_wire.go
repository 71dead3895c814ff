package wire

import (
	"fleet-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAnalytics(r chi.Router, analyticsHandler *adaptor.AnalyticsHandler) {
	r.Get("/analytics", analyticsHandler.Dashboard)
}

func wireTracking(r chi.Router, trackingHandler *adaptor.TrackingHandler) {
	r.Route("/tracking", func(r chi.Router) {
		r.Get("/", trackingHandler.Snapshot)
		r.Post("/refresh", trackingHandler.Refresh)
		r.Get("/ws", trackingHandler.Stream)
	})
}
