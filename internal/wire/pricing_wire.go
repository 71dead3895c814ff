package wire

import (
	"fleet-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	r.Route("/pricing", func(r chi.Router) {
		r.Get("/rules", pricingHandler.ListRules)
		r.Post("/rules", pricingHandler.CreateRule)
		r.Get("/rules/{id}", pricingHandler.GetRule)
		r.Put("/rules/{id}", pricingHandler.UpdateRule)
		r.Delete("/rules/{id}", pricingHandler.DeactivateRule)

		r.Get("/zones", pricingHandler.ListZones)
		r.Post("/zones", pricingHandler.CreateZone)
		r.Put("/zones/{id}", pricingHandler.UpdateZone)
		r.Delete("/zones/{id}", pricingHandler.DeactivateZone)

		r.Post("/calculate", pricingHandler.Calculate)
	})
}
